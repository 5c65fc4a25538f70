package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Token storage backends understood by the CLI
const (
	BackendKeyring = "keyring"
	BackendFile    = "file"
	BackendSQLite  = "sqlite"
	BackendMemory  = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// API Configuration
	API APIConfig

	// Token storage configuration
	Storage StorageConfig

	// Logging Configuration
	Logging LoggingConfig
}

// APIConfig holds the remote catalog API configuration
type APIConfig struct {
	URL     string        `env:"NEBULA_API_URL" envDefault:"http://localhost:8080"`
	Timeout time.Duration `env:"NEBULA_HTTP_TIMEOUT" envDefault:"30s"`
}

// StorageConfig holds where the session token and user preferences live
type StorageConfig struct {
	Backend  string `env:"NEBULA_TOKEN_BACKEND" envDefault:"keyring"`
	StateDir string `env:"NEBULA_STATE_DIR"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"warn"`
	Format string `env:"LOG_FORMAT" envDefault:"console"` // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// State directory - default to ~/.config/nebula
	if cfg.Storage.StateDir == "" {
		dir, err := defaultStateDir()
		if err != nil {
			return nil, err
		}
		cfg.Storage.StateDir = dir
	}

	cfg.API.URL = strings.TrimRight(cfg.API.URL, "/")
	cfg.Storage.Backend = strings.ToLower(cfg.Storage.Backend)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that the environment parser cannot
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendKeyring, BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("invalid NEBULA_TOKEN_BACKEND %q, must be one of: keyring, file, sqlite, memory", c.Storage.Backend)
	}

	if c.API.URL == "" {
		return fmt.Errorf("NEBULA_API_URL must not be empty")
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("NEBULA_HTTP_TIMEOUT must be positive, got %s", c.API.Timeout)
	}

	return nil
}

func defaultStateDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "nebula"), nil
}
