package mpi

import (
	"net/url"
	"time"

	pkgerrors "github.com/kevin07696/mpi-client/pkg/errors"
)

const (
	// DefaultEndpoint is the Europabank MPI test environment
	DefaultEndpoint = "https://www.ebonline.be/test/mpi/authenticate"

	// DefaultTimeout bounds a single gateway exchange
	DefaultTimeout = 30 * time.Second
)

// Config holds the credentials and endpoint of an MPI merchant account
type Config struct {
	// Endpoint receives every MPI request via HTTP POST
	Endpoint string

	// MerchantUID identifies the merchant; injected into sections that lack a uid
	MerchantUID string

	// ServerSecret authenticates messages coming from the gateway.
	// It is required but not used for outgoing requests.
	ServerSecret string

	// ClientSecret is appended to the signed fields of every request
	ClientSecret string

	// Timeout for one exchange (default: 30s)
	Timeout time.Duration
}

// DefaultConfig returns a config for the test endpoint
func DefaultConfig(merchantUID, serverSecret, clientSecret string) Config {
	return Config{
		Endpoint:     DefaultEndpoint,
		MerchantUID:  merchantUID,
		ServerSecret: serverSecret,
		ClientSecret: clientSecret,
		Timeout:      DefaultTimeout,
	}
}

// Validate checks that the endpoint and all credentials are set
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return pkgerrors.NewConfigurationError("endpoint", "is required")
	}
	if c.MerchantUID == "" {
		return pkgerrors.NewConfigurationError("merchant_uid", "is required")
	}
	if c.ServerSecret == "" {
		return pkgerrors.NewConfigurationError("server_secret", "is required")
	}
	if c.ClientSecret == "" {
		return pkgerrors.NewConfigurationError("client_secret", "is required")
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return pkgerrors.NewConfigurationError("endpoint", "must be an absolute http or https URL")
	}

	if c.Timeout < 0 {
		return pkgerrors.NewConfigurationError("timeout", "must not be negative")
	}
	return nil
}

func (c Config) timeout() time.Duration {
	if c.Timeout == 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
