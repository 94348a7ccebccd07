package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the service configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	RPA      RPAConfig      `toml:"rpa"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// DatabaseConfig holds the persistence settings
type DatabaseConfig struct {
	Type string `toml:"type"` // sqlite
	DSN  string `toml:"dsn"`  // data source name
}

// RPAConfig holds engine and connection-test tuning
type RPAConfig struct {
	HistoryLimit    int `toml:"history_limit"`     // default page size for run history queries
	ConnTestMinMs   int `toml:"conn_test_min_ms"`  // lower bound of the simulated connection-test delay
	ConnTestSpanMs  int `toml:"conn_test_span_ms"` // random span added on top of the lower bound
}

// LoadConfig loads and parses a TOML config file, applying defaults
func LoadConfig(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&config)
	return &config, nil
}

// DefaultConfig returns a configuration with all defaults applied
func DefaultConfig() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

func applyDefaults(config *Config) {
	if config.Server.Host == "" {
		config.Server.Host = "0.0.0.0"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 3002
	}
	if config.Database.Type == "" {
		config.Database.Type = "sqlite"
	}
	if config.Database.DSN == "" {
		config.Database.DSN = "./data/rpa_service.db"
	}
	if config.RPA.HistoryLimit == 0 {
		config.RPA.HistoryLimit = 50
	}
	if config.RPA.ConnTestMinMs == 0 {
		config.RPA.ConnTestMinMs = 1000
	}
	if config.RPA.ConnTestSpanMs == 0 {
		config.RPA.ConnTestSpanMs = 500
	}
}

// GetAddr returns the listen address
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
