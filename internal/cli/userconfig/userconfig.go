package userconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	configFileName = "config.json"
)

// UserConfig represents the user's local preferences stored in <state dir>/config.json
type UserConfig struct {
	SelectedEndpoint string `json:"selected_endpoint,omitempty"`
	Theme            string `json:"theme,omitempty"`
}

// GetConfigPath returns the path to the user config file
func GetConfigPath(dir string) string {
	return filepath.Join(dir, configFileName)
}

// Load reads the user configuration file
func Load(dir string) (*UserConfig, error) {
	configPath := GetConfigPath(dir)

	// If config doesn't exist, return empty config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config file: %w", err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the user configuration to a file
func Save(dir string, cfg *UserConfig) error {
	// Create config directory if it doesn't exist
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(GetConfigPath(dir), data, 0600); err != nil {
		return fmt.Errorf("failed to write user config file: %w", err)
	}

	return nil
}

// Update loads the config, applies fn and saves the result
func Update(dir string, fn func(cfg *UserConfig)) error {
	cfg, err := Load(dir)
	if err != nil {
		return err
	}

	fn(cfg)
	return Save(dir, cfg)
}

// SetSelectedEndpoint updates the selected endpoint URL and saves the config
func SetSelectedEndpoint(dir, url string) error {
	return Update(dir, func(cfg *UserConfig) {
		cfg.SelectedEndpoint = url
	})
}

// GetSelectedEndpoint returns the selected endpoint URL, or empty string if not set
func GetSelectedEndpoint(dir string) (string, error) {
	cfg, err := Load(dir)
	if err != nil {
		return "", err
	}

	return cfg.SelectedEndpoint, nil
}
