package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kevin07696/mpi-client/pkg/mpi"
)

// Config holds all application configuration
type Config struct {
	MPI     MPIConfig
	Secrets SecretsConfig
	Logger  LoggerConfig
}

// MPIConfig holds Europabank MPI gateway configuration
type MPIConfig struct {
	Endpoint     string // Gateway URL (default: Europabank test environment)
	MerchantUID  string // Merchant identifier issued by Europabank
	ServerSecret string // Used to verify gateway callbacks
	ClientSecret string // Used to sign outbound requests
	Timeout      int    // Request timeout in seconds (default: 30)
}

// SecretsConfig selects where the MPI secrets are read from
type SecretsConfig struct {
	Manager          string // env, local, aws or vault
	ServerSecretPath string
	ClientSecretPath string

	LocalDir string

	AWSRegion   string
	AWSProfile  string
	AWSEndpoint string

	VaultAddress   string
	VaultToken     string
	VaultMountPath string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		MPI: MPIConfig{
			Endpoint:     getEnv("MPI_ENDPOINT", mpi.DefaultEndpoint),
			MerchantUID:  getEnv("MPI_MERCHANT_UID", ""),
			ServerSecret: getEnv("MPI_SERVER_SECRET", ""),
			ClientSecret: getEnv("MPI_CLIENT_SECRET", ""),
			Timeout:      getEnvAsInt("MPI_TIMEOUT", 30),
		},
		Secrets: SecretsConfig{
			Manager:          getEnv("SECRET_MANAGER", "env"),
			ServerSecretPath: getEnv("MPI_SERVER_SECRET_PATH", "mpi/server_secret"),
			ClientSecretPath: getEnv("MPI_CLIENT_SECRET_PATH", "mpi/client_secret"),
			LocalDir:         getEnv("LOCAL_SECRETS_DIR", "./secrets"),
			AWSRegion:        getEnv("AWS_REGION", "eu-west-1"),
			AWSProfile:       getEnv("AWS_PROFILE", ""),
			AWSEndpoint:      getEnv("AWS_SECRETS_ENDPOINT", ""),
			VaultAddress:     getEnv("VAULT_ADDR", "http://127.0.0.1:8200"),
			VaultToken:       getEnv("VAULT_TOKEN", ""),
			VaultMountPath:   getEnv("VAULT_MOUNT_PATH", "secret"),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	// Validate required fields
	if cfg.MPI.MerchantUID == "" {
		return nil, fmt.Errorf("MPI_MERCHANT_UID is required")
	}
	switch cfg.Secrets.Manager {
	case "env":
		if cfg.MPI.ServerSecret == "" {
			return nil, fmt.Errorf("MPI_SERVER_SECRET is required")
		}
		if cfg.MPI.ClientSecret == "" {
			return nil, fmt.Errorf("MPI_CLIENT_SECRET is required")
		}
	case "local", "aws", "vault":
	default:
		return nil, fmt.Errorf("unsupported SECRET_MANAGER: %s", cfg.Secrets.Manager)
	}
	if cfg.Secrets.Manager == "vault" && cfg.Secrets.VaultToken == "" {
		return nil, fmt.Errorf("VAULT_TOKEN is required when SECRET_MANAGER=vault")
	}

	return cfg, nil
}

// ClientConfig converts the settings into an mpi.Config
func (c *MPIConfig) ClientConfig() mpi.Config {
	return mpi.Config{
		Endpoint:     c.Endpoint,
		MerchantUID:  c.MerchantUID,
		ServerSecret: c.ServerSecret,
		ClientSecret: c.ClientSecret,
		Timeout:      time.Duration(c.Timeout) * time.Second,
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
