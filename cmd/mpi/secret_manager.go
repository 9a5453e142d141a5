package main

import (
	"context"
	"fmt"

	"github.com/kevin07696/mpi-client/internal/adapters/ports"
	"github.com/kevin07696/mpi-client/internal/adapters/secrets"
	"github.com/kevin07696/mpi-client/internal/config"
	"go.uber.org/zap"
)

// resolveSecrets fills the MPI secrets from the configured secret manager.
//
// Environment Variables:
//   - SECRET_MANAGER: "env", "local", "aws" or "vault" (default: env)
//   - MPI_SERVER_SECRET_PATH / MPI_CLIENT_SECRET_PATH: secret locations
//   - LOCAL_SECRETS_DIR: base directory for SECRET_MANAGER=local
//   - AWS_REGION, AWS_PROFILE, AWS_SECRETS_ENDPOINT: SECRET_MANAGER=aws
//   - VAULT_ADDR, VAULT_TOKEN, VAULT_MOUNT_PATH: SECRET_MANAGER=vault
func resolveSecrets(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if cfg.Secrets.Manager == "env" {
		return nil
	}

	sm, err := initSecretManager(ctx, &cfg.Secrets, logger)
	if err != nil {
		return err
	}

	server, err := sm.GetSecret(ctx, cfg.Secrets.ServerSecretPath)
	if err != nil {
		return fmt.Errorf("failed to read server secret: %w", err)
	}
	client, err := sm.GetSecret(ctx, cfg.Secrets.ClientSecretPath)
	if err != nil {
		return fmt.Errorf("failed to read client secret: %w", err)
	}

	cfg.MPI.ServerSecret = server.Value
	cfg.MPI.ClientSecret = client.Value

	logger.Info("MPI secrets loaded",
		zap.String("secret_manager", cfg.Secrets.Manager),
		zap.String("client_secret_version", client.Version),
	)
	return nil
}

// initSecretManager creates the adapter selected by SECRET_MANAGER
func initSecretManager(ctx context.Context, cfg *config.SecretsConfig, logger *zap.Logger) (ports.SecretManagerAdapter, error) {
	switch cfg.Manager {
	case "local":
		logger.Warn("Using LOCAL secret manager - NOT for production use!",
			zap.String("dir", cfg.LocalDir),
		)
		return secrets.NewLocalSecretManager(cfg.LocalDir, logger), nil

	case "aws":
		awsCfg := secrets.DefaultAWSSecretsManagerConfig(cfg.AWSRegion)
		awsCfg.Profile = cfg.AWSProfile
		awsCfg.Endpoint = cfg.AWSEndpoint
		return secrets.NewAWSSecretsManagerAdapter(ctx, awsCfg, logger)

	case "vault":
		vaultCfg := secrets.DefaultVaultConfig(cfg.VaultAddress)
		vaultCfg.Token = cfg.VaultToken
		vaultCfg.MountPath = cfg.VaultMountPath
		return secrets.NewVaultAdapter(ctx, vaultCfg, logger)

	default:
		return nil, fmt.Errorf("unsupported secret manager: %s", cfg.Manager)
	}
}
