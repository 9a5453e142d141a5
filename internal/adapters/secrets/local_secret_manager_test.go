package secrets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeSecretFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLocalSecretManager_GetSecret(t *testing.T) {
	dir := t.TempDir()
	writeSecretFile(t, dir, "mpi/client_secret", "S1\n")
	writeSecretFile(t, dir, "mpi/server_secret.json", `{"value":"S0","tags":{"merchant":"M1"},"created_at":"2024-01-01T00:00:00Z"}`)

	sm := NewLocalSecretManager(dir, zap.NewNop())
	ctx := context.Background()

	t.Run("plain text is trimmed", func(t *testing.T) {
		secret, err := sm.GetSecret(ctx, "mpi/client_secret")
		require.NoError(t, err)
		assert.Equal(t, "S1", secret.Value)
		assert.Equal(t, "v1", secret.Version)
	})

	t.Run("json carries metadata", func(t *testing.T) {
		secret, err := sm.GetSecret(ctx, "mpi/server_secret.json")
		require.NoError(t, err)
		assert.Equal(t, "S0", secret.Value)
		assert.Equal(t, "M1", secret.Metadata["merchant"])
		assert.Equal(t, "2024-01-01T00:00:00Z", secret.CreatedAt)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := sm.GetSecret(ctx, "mpi/missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret not found")
	})

	t.Run("path cannot escape base directory", func(t *testing.T) {
		outside := filepath.Join(filepath.Dir(dir), "outside_secret")
		require.NoError(t, os.WriteFile(outside, []byte("leak"), 0o600))
		t.Cleanup(func() { _ = os.Remove(outside) })

		_, err := sm.GetSecret(ctx, "../outside_secret")
		assert.Error(t, err)
	})
}
