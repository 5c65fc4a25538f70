package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = "nebula.yaml"

// ErrNotFound is returned when no project config exists
var ErrNotFound = errors.New("nebula.yaml not found")

// Endpoint is a storefront API the CLI can talk to
type Endpoint struct {
	Alias string `yaml:"alias"`
	URL   string `yaml:"url"`
}

// Validate checks that the endpoint URL is an absolute http(s) URL
func (e Endpoint) Validate() error {
	u, err := url.Parse(e.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint %q has invalid url %q, expected http(s)://host[:port]", e.Alias, e.URL)
	}
	return nil
}

// Config represents the project configuration file
type Config struct {
	Endpoints []Endpoint `yaml:"endpoints"`
}

// FindConfigFile searches for nebula.yaml in current directory and parent directories
func FindConfigFile() (string, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	// Search upwards until we find nebula.yaml or reach root
	dir := currentDir
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("%w in %s or any parent directory", ErrNotFound, currentDir)
}

// Load reads the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	for i := range cfg.Endpoints {
		cfg.Endpoints[i].URL = strings.TrimRight(cfg.Endpoints[i].URL, "/")
		if err := cfg.Endpoints[i].Validate(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

// LoadFromCurrentDir loads config from current directory or parent directories
func LoadFromCurrentDir() (*Config, error) {
	configPath, err := FindConfigFile()
	if err != nil {
		return nil, err
	}

	return Load(configPath)
}

// Save writes the configuration to a file
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// AddEndpoint appends an endpoint unless its URL is already listed.
// It reports whether the endpoint was added.
func (c *Config) AddEndpoint(e Endpoint) bool {
	for _, existing := range c.Endpoints {
		if existing.URL == e.URL {
			return false
		}
	}
	c.Endpoints = append(c.Endpoints, e)
	return true
}

// GetEndpointByAlias returns an endpoint by its alias
func (c *Config) GetEndpointByAlias(alias string) (*Endpoint, error) {
	for i := range c.Endpoints {
		if c.Endpoints[i].Alias == alias {
			return &c.Endpoints[i], nil
		}
	}
	return nil, fmt.Errorf("endpoint with alias '%s' not found", alias)
}

// GetEndpointByURLOrAlias finds an endpoint by URL or alias
func (c *Config) GetEndpointByURLOrAlias(urlOrAlias string) (*Endpoint, error) {
	trimmed := strings.TrimRight(urlOrAlias, "/")
	for i := range c.Endpoints {
		if c.Endpoints[i].URL == trimmed {
			return &c.Endpoints[i], nil
		}
	}
	return c.GetEndpointByAlias(urlOrAlias)
}
