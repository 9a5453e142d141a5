package config

import (
	"testing"
	"time"

	"github.com/kevin07696/mpi-client/pkg/mpi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("MPI_MERCHANT_UID", "M1")
	t.Setenv("MPI_SERVER_SECRET", "S0")
	t.Setenv("MPI_CLIENT_SECRET", "S1")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, mpi.DefaultEndpoint, cfg.MPI.Endpoint)
	assert.Equal(t, 30, cfg.MPI.Timeout)
	assert.Equal(t, "env", cfg.Secrets.Manager)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.False(t, cfg.Logger.Development)

	clientCfg := cfg.MPI.ClientConfig()
	assert.Equal(t, "M1", clientCfg.MerchantUID)
	assert.Equal(t, 30*time.Second, clientCfg.Timeout)
	assert.NoError(t, clientCfg.Validate())
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("MPI_ENDPOINT", "https://gateway.example/mpi")
	t.Setenv("MPI_MERCHANT_UID", "M1")
	t.Setenv("MPI_TIMEOUT", "5")
	t.Setenv("SECRET_MANAGER", "local")
	t.Setenv("LOCAL_SECRETS_DIR", "/tmp/mpi")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_DEVELOPMENT", "true")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://gateway.example/mpi", cfg.MPI.Endpoint)
	assert.Equal(t, 5, cfg.MPI.Timeout)
	assert.Equal(t, "local", cfg.Secrets.Manager)
	assert.Equal(t, "/tmp/mpi", cfg.Secrets.LocalDir)
	assert.Equal(t, "mpi/client_secret", cfg.Secrets.ClientSecretPath)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.True(t, cfg.Logger.Development)
}

func TestLoadFromEnv_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("MPI_MERCHANT_UID", "M1")
	t.Setenv("MPI_SERVER_SECRET", "S0")
	t.Setenv("MPI_CLIENT_SECRET", "S1")
	t.Setenv("MPI_TIMEOUT", "soon")
	t.Setenv("LOG_DEVELOPMENT", "maybe")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.MPI.Timeout)
	assert.False(t, cfg.Logger.Development)
}

func TestLoadFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing merchant uid",
			env:  map[string]string{},
			want: "MPI_MERCHANT_UID is required",
		},
		{
			name: "missing client secret",
			env:  map[string]string{"MPI_MERCHANT_UID": "M1", "MPI_SERVER_SECRET": "S0"},
			want: "MPI_CLIENT_SECRET is required",
		},
		{
			name: "missing server secret",
			env:  map[string]string{"MPI_MERCHANT_UID": "M1", "MPI_CLIENT_SECRET": "S1"},
			want: "MPI_SERVER_SECRET is required",
		},
		{
			name: "unknown secret manager",
			env:  map[string]string{"MPI_MERCHANT_UID": "M1", "SECRET_MANAGER": "gcp"},
			want: "unsupported SECRET_MANAGER: gcp",
		},
		{
			name: "vault without token",
			env:  map[string]string{"MPI_MERCHANT_UID": "M1", "SECRET_MANAGER": "vault"},
			want: "VAULT_TOKEN is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"MPI_MERCHANT_UID", "MPI_SERVER_SECRET", "MPI_CLIENT_SECRET", "SECRET_MANAGER", "VAULT_TOKEN"} {
				t.Setenv(key, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
