package mpi

import (
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/kevin07696/mpi-client/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("M1", "server", "client")

	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Config)
		expectedField string
	}{
		{name: "missing endpoint", mutate: func(c *Config) { c.Endpoint = "" }, expectedField: "endpoint"},
		{name: "missing merchant uid", mutate: func(c *Config) { c.MerchantUID = "" }, expectedField: "merchant_uid"},
		{name: "missing server secret", mutate: func(c *Config) { c.ServerSecret = "" }, expectedField: "server_secret"},
		{name: "missing client secret", mutate: func(c *Config) { c.ClientSecret = "" }, expectedField: "client_secret"},
		{name: "relative endpoint", mutate: func(c *Config) { c.Endpoint = "/mpi/authenticate" }, expectedField: "endpoint"},
		{name: "unsupported scheme", mutate: func(c *Config) { c.Endpoint = "ftp://example.com" }, expectedField: "endpoint"},
		{name: "negative timeout", mutate: func(c *Config) { c.Timeout = -time.Second }, expectedField: "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("M1", "server", "client")
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var cfgErr *pkgerrors.ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.expectedField, cfgErr.Field)
		})
	}
}

func TestNewClient_EmptyClientSecret(t *testing.T) {
	cfg := DefaultConfig("M1", "server", "")

	client, err := NewClientWithDefaults(cfg, nil)

	assert.Nil(t, client)
	var cfgErr *pkgerrors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "client_secret", cfgErr.Field)
}

func TestConfig_ZeroTimeoutUsesDefault(t *testing.T) {
	cfg := DefaultConfig("M1", "server", "client")
	cfg.Timeout = 0

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultTimeout, cfg.timeout())
}
