package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for gateway exchanges
const (
	OutcomeSuccess        = "success"
	OutcomeAPIFault       = "api_fault"
	OutcomeTransportError = "transport_error"
	OutcomeDecodingError  = "decoding_error"
	OutcomeEncodingError  = "encoding_error"
)

var (
	// MPI gateway request metrics
	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mpi_gateway_requests_total",
			Help: "Total number of MPI gateway requests",
		},
		[]string{"operation", "outcome"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "mpi_gateway_request_duration_seconds",
			Help: "Duration of MPI gateway round trips in seconds",
			// 50ms to 30s (client timeout)
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	gatewayRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mpi_gateway_requests_in_flight",
			Help: "Number of MPI gateway requests currently waiting for a reply",
		},
	)
)

// TrackGatewayRequest marks a request as in flight and returns a function that
// records its outcome and duration
func TrackGatewayRequest(operation string) func(outcome string) {
	start := time.Now()
	gatewayRequestsInFlight.Inc()

	return func(outcome string) {
		gatewayRequestsInFlight.Dec()
		RecordGatewayRequest(operation, outcome, time.Since(start))
	}
}

// RecordGatewayRequest records a finished gateway exchange
func RecordGatewayRequest(operation, outcome string, duration time.Duration) {
	gatewayRequestsTotal.WithLabelValues(operation, outcome).Inc()
	gatewayRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
