package secrets

import (
	"testing"
	"time"

	"github.com/kevin07696/mpi-client/internal/adapters/ports"
	"github.com/stretchr/testify/assert"
)

func TestSplitSecretPath(t *testing.T) {
	tests := []struct {
		path, name, field string
	}{
		{"mpi/M1", "mpi/M1", ""},
		{"mpi/M1#client_secret", "mpi/M1", "client_secret"},
		{"arn:aws:secretsmanager:eu-west-1:1:secret:mpi#value", "arn:aws:secretsmanager:eu-west-1:1:secret:mpi", "value"},
	}
	for _, tt := range tests {
		name, field := splitSecretPath(tt.path)
		assert.Equal(t, tt.name, name)
		assert.Equal(t, tt.field, field)
	}
}

func TestPickField(t *testing.T) {
	data := map[string]interface{}{"value": "S1", "empty": "", "number": 42}

	v, err := pickField(data, "value")
	assert.NoError(t, err)
	assert.Equal(t, "S1", v)

	_, err = pickField(data, "empty")
	assert.Error(t, err)
	_, err = pickField(data, "number")
	assert.Error(t, err)
	_, err = pickField(data, "absent")
	assert.Error(t, err)
}

func TestSecretCache_Expiry(t *testing.T) {
	cache := newSecretCache(true, 10*time.Millisecond)
	cache.set("k", &ports.Secret{Value: "v"})
	assert.NotNil(t, cache.get("k"))

	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, cache.get("k"))

	disabled := newSecretCache(false, time.Minute)
	disabled.set("k", &ports.Secret{Value: "v"})
	assert.Nil(t, disabled.get("k"))
}
