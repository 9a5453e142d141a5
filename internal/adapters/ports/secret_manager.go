package ports

import (
	"context"
)

// Secret represents a retrieved secret with metadata
type Secret struct {
	Value     string            // The secret value (e.g., MPI client secret)
	Version   string            // Secret version identifier
	Metadata  map[string]string // Additional secret metadata
	CreatedAt string            // When this version was created
}

// SecretManagerAdapter defines the port for retrieving MPI credentials from a
// secret management service.
// Supports multiple backends: local filesystem, AWS Secrets Manager, HashiCorp Vault
type SecretManagerAdapter interface {
	// GetSecret retrieves a secret by its path/name
	// Path format depends on implementation:
	//   - Local: "mpi/client_secret" relative to the base directory
	//   - AWS: "mpi/{merchant_uid}/client_secret" or full ARN
	//   - Vault: "mpi/{merchant_uid}" under the KV mount
	// Returns error if the secret does not exist or the backend is unreachable
	GetSecret(ctx context.Context, path string) (*Secret, error)
}
