package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// Logging configuration
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // "text" or "json"

	// Application configuration
	Environment string `yaml:"environment"`

	// Calculation defaults applied when a request omits them
	DefaultBaseCurrency string `yaml:"default_base_currency"`
}

// Load loads the configuration from environment variables.
func Load() *Config {
	return &Config{
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		DefaultBaseCurrency: getEnv("DEFAULT_BASE_CURRENCY", "USD"),
	}
}

// LoadFile loads configuration from a YAML file layered over the
// environment: file values win when set.
func LoadFile(path string) (*Config, error) {
	cfg := Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogFormat != "" {
		cfg.LogFormat = fileCfg.LogFormat
	}
	if fileCfg.Environment != "" {
		cfg.Environment = fileCfg.Environment
	}
	if fileCfg.DefaultBaseCurrency != "" {
		cfg.DefaultBaseCurrency = fileCfg.DefaultBaseCurrency
	}

	return cfg, nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}
