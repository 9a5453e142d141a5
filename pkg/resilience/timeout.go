package resilience

import (
	"context"
	"time"
)

// TimeoutConfig bounds a single gateway exchange.
//
// The operation deadline must exceed the HTTP client timeout so the transport
// reports its own error before the context is cancelled.
type TimeoutConfig struct {
	ExternalAPI time.Duration // HTTP client timeout for one MPI exchange (default: 30s)
	Operation   time.Duration // Whole operation including encoding and decoding (default: 35s)
}

// NewTimeoutConfig derives the hierarchy from the external API timeout.
// A non-positive value falls back to the default.
func NewTimeoutConfig(externalAPI time.Duration) *TimeoutConfig {
	if externalAPI <= 0 {
		externalAPI = 30 * time.Second
	}
	return &TimeoutConfig{
		ExternalAPI: externalAPI,
		Operation:   externalAPI + externalAPI/6,
	}
}

// OperationContext creates a context with the operation deadline.
// A parent that already expires sooner keeps its own deadline.
func (tc *TimeoutConfig) OperationContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, tc.Operation)
}
