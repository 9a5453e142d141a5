package secrets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newVaultServer serves a KV v2 secret at secret/mpi/M1, a KV v1 secret at
// kv/mpi/M1 and an AppRole login endpoint
func newVaultServer(t *testing.T, reads *int32) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/secret/data/mpi/M1", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(reads, 1)
		if r.Header.Get("X-Vault-Token") == "" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"errors":["permission denied"]}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"data":{"value":"S1","client_secret":"S1","server_secret":"S0"},"metadata":{"version":3,"created_time":"2024-01-01T00:00:00Z"}}}`))
	})
	mux.HandleFunc("/v1/kv/mpi/M1", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(reads, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"value":"S1-v1"}}`))
	})
	mux.HandleFunc("/v1/auth/approle/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"auth":{"client_token":"approle-token"}}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"errors":[]}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestVaultAdapter_GetSecretKVv2(t *testing.T) {
	var reads int32
	server := newVaultServer(t, &reads)

	cfg := DefaultVaultConfig(server.URL)
	cfg.Token = "root"
	adapter, err := NewVaultAdapter(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("value key by default", func(t *testing.T) {
		secret, err := adapter.GetSecret(ctx, "mpi/M1")
		require.NoError(t, err)
		assert.Equal(t, "S1", secret.Value)
		assert.Equal(t, "3", secret.Version)
		assert.Equal(t, "2024-01-01T00:00:00Z", secret.CreatedAt)
	})

	t.Run("field selection", func(t *testing.T) {
		secret, err := adapter.GetSecret(ctx, "mpi/M1#server_secret")
		require.NoError(t, err)
		assert.Equal(t, "S0", secret.Value)
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := adapter.GetSecret(ctx, "mpi/M1#missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `field "missing" not found`)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := adapter.GetSecret(ctx, "mpi/unknown")
		assert.Error(t, err)
	})
}

func TestVaultAdapter_Cache(t *testing.T) {
	var reads int32
	server := newVaultServer(t, &reads)
	ctx := context.Background()

	cfg := DefaultVaultConfig(server.URL)
	cfg.Token = "root"
	adapter, err := NewVaultAdapter(ctx, cfg, zap.NewNop())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		secret, err := adapter.GetSecret(ctx, "mpi/M1#client_secret")
		require.NoError(t, err)
		assert.Equal(t, "S1", secret.Value)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&reads))

	// a different field is a different cache entry
	_, err = adapter.GetSecret(ctx, "mpi/M1#server_secret")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&reads))
}

func TestVaultAdapter_GetSecretKVv1(t *testing.T) {
	var reads int32
	server := newVaultServer(t, &reads)

	cfg := DefaultVaultConfig(server.URL)
	cfg.Token = "root"
	cfg.MountPath = "kv"
	cfg.KVVersion = "v1"
	adapter, err := NewVaultAdapter(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	secret, err := adapter.GetSecret(context.Background(), "mpi/M1")
	require.NoError(t, err)
	assert.Equal(t, "S1-v1", secret.Value)
	assert.Equal(t, "1", secret.Version)
}

func TestVaultAdapter_AppRoleLogin(t *testing.T) {
	var reads int32
	server := newVaultServer(t, &reads)

	cfg := DefaultVaultConfig(server.URL)
	cfg.AuthMethod = "approle"
	cfg.RoleID = "role"
	cfg.SecretID = "secret"
	adapter, err := NewVaultAdapter(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	secret, err := adapter.GetSecret(context.Background(), "mpi/M1")
	require.NoError(t, err)
	assert.Equal(t, "S1", secret.Value)
}

func TestNewVaultAdapter_AuthErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  func(*VaultConfig)
		want string
	}{
		{name: "token missing", cfg: func(c *VaultConfig) { c.Token = "" }, want: "token is required"},
		{name: "approle credentials missing", cfg: func(c *VaultConfig) { c.AuthMethod = "approle" }, want: "role_id and secret_id are required"},
		{name: "unknown method", cfg: func(c *VaultConfig) { c.AuthMethod = "ldap" }, want: "unsupported auth method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultVaultConfig("http://127.0.0.1:1")
			tt.cfg(cfg)

			_, err := NewVaultAdapter(context.Background(), cfg, zap.NewNop())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
