package mpi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/kevin07696/mpi-client/pkg/encoding"
	pkgerrors "github.com/kevin07696/mpi-client/pkg/errors"
	pkghttp "github.com/kevin07696/mpi-client/pkg/http"
	"github.com/kevin07696/mpi-client/pkg/logging"
	"github.com/kevin07696/mpi-client/pkg/observability"
	"github.com/kevin07696/mpi-client/pkg/ports"
	"github.com/kevin07696/mpi-client/pkg/resilience"
)

// Client talks to the Europabank MPI gateway.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	config     Config
	httpClient ports.HTTPClient
	logger     ports.Logger
	timeouts   *resilience.TimeoutConfig
}

// NewClient creates a client with an injected HTTP client and logger.
// A nil logger discards output; a nil HTTP client gets the default one.
func NewClient(cfg Config, httpClient ports.HTTPClient, logger ports.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if httpClient == nil {
		httpClient = pkghttp.NewHTTPClient(pkghttp.MPIClientConfig(), cfg.timeout())
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		logger:     logger,
		timeouts:   resilience.NewTimeoutConfig(cfg.timeout()),
	}, nil
}

// NewClientWithDefaults creates a client using a fresh connection per request
func NewClientWithDefaults(cfg Config, logger ports.Logger) (*Client, error) {
	return NewClient(cfg, nil, logger)
}

// Authorize starts a payment and returns the URL the customer must be redirected to
func (c *Client) Authorize(ctx context.Context, merchant, customer, transaction *encoding.Map) (string, error) {
	envelope := c.BuildAuthorizeEnvelope(merchant, customer, transaction)

	resp, err := c.execute(ctx, OperationAuthorize, envelope)
	if err != nil {
		return "", err
	}

	redirectURL := resp.Get("url")
	if redirectURL == "" {
		return "", pkgerrors.NewDecodingError("authorize response has no url", resp.Raw, nil)
	}
	return redirectURL, nil
}

// AuthorizePayment is Authorize for typed sections
func (c *Client) AuthorizePayment(ctx context.Context, merchant Merchant, customer Customer, transaction Transaction) (string, error) {
	return c.Authorize(ctx, merchant.ToMap(), customer.ToMap(), transaction.ToMap())
}

// Status queries the state of transaction id
func (c *Client) Status(ctx context.Context, id string, merchant, transaction *encoding.Map) (*Response, error) {
	return c.execute(ctx, OperationStatus, c.BuildStatusEnvelope(id, merchant, transaction))
}

// Capture settles the previously authorized transaction id
func (c *Client) Capture(ctx context.Context, id string, merchant, transaction *encoding.Map) (*Response, error) {
	return c.execute(ctx, OperationCapture, c.BuildCaptureEnvelope(id, merchant, transaction))
}

// execute sends envelope and records the outcome
func (c *Client) execute(ctx context.Context, op Operation, envelope *encoding.Map) (*Response, error) {
	done := observability.TrackGatewayRequest(string(op))

	resp, err := c.roundTrip(ctx, op, envelope)
	done(outcomeOf(err))

	return resp, err
}

func (c *Client) roundTrip(ctx context.Context, op Operation, envelope *encoding.Map) (*Response, error) {
	requestID := uuid.NewString()

	body, err := encoding.Encode(envelope)
	if err != nil {
		c.logger.Error("Failed to encode MPI request",
			ports.String("operation", string(op)),
			ports.String("request_id", requestID),
			ports.Err(err),
		)
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	ctx, cancel := c.timeouts.OperationContext(ctx)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "text/xml")

	c.logger.Info("Sending MPI request",
		ports.String("operation", string(op)),
		ports.String("request_id", requestID),
		ports.String("endpoint", c.config.Endpoint),
		ports.Int("body_length", len(body)),
	)

	startTime := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("Failed to send MPI request",
			ports.String("operation", string(op)),
			ports.String("request_id", requestID),
			ports.Duration("elapsed", time.Since(startTime)),
			ports.Err(err),
		)
		return nil, pkgerrors.WrapTransportError(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		c.logger.Error("Failed to read MPI response body",
			ports.String("request_id", requestID),
			ports.Err(err),
		)
		return nil, &pkgerrors.TransportError{
			Code:    httpResp.StatusCode,
			Message: "failed to read response",
			Err:     err,
		}
	}

	c.logger.Info("Received MPI response",
		ports.String("operation", string(op)),
		ports.String("request_id", requestID),
		ports.Int("status_code", httpResp.StatusCode),
		ports.Duration("elapsed", time.Since(startTime)),
		ports.Int("body_length", len(respBody)),
	)

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, pkgerrors.NewTransportError(httpResp.StatusCode, "request failed")
	}

	resp, err := decodeResponse(respBody)
	if err != nil {
		var fault *pkgerrors.APIFault
		if errors.As(err, &fault) {
			c.logger.Warn("MPI gateway returned an error",
				ports.String("operation", string(op)),
				ports.String("request_id", requestID),
				ports.String("error_code", fault.Code),
				ports.String("error_message", fault.Message),
			)
		} else {
			c.logger.Error("Failed to decode MPI response",
				ports.String("operation", string(op)),
				ports.String("request_id", requestID),
				ports.Err(err),
			)
		}
		return nil, err
	}

	return resp, nil
}

func outcomeOf(err error) string {
	var (
		fault     *pkgerrors.APIFault
		transport *pkgerrors.TransportError
		decoding  *pkgerrors.DecodingError
	)
	switch {
	case err == nil:
		return observability.OutcomeSuccess
	case errors.As(err, &fault):
		return observability.OutcomeAPIFault
	case errors.As(err, &transport):
		return observability.OutcomeTransportError
	case errors.As(err, &decoding):
		return observability.OutcomeDecodingError
	default:
		return observability.OutcomeEncodingError
	}
}
