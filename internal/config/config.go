package config

import (
	"os"
	"strconv"

	"storekpi/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Pipeline PipelineConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds dataset source settings. Exactly one source is used per
// run: a file path (xlsx or csv) or, when set, a warehouse DSN.
type DataConfig struct {
	FilePath  string // SUPERSTORE_FILE: path to the orders export (.xlsx or .csv)
	SheetName string // SHEET_NAME: workbook sheet; empty means first sheet
	DSN       string // SUPERSTORE_DSN: optional Postgres connection string
	Table     string // SUPERSTORE_TABLE: warehouse table holding the orders
}

// PipelineConfig holds recompute settings
type PipelineConfig struct {
	TopN                int   // ranked product list length
	MaxConcurrentBuilds int64 // weighted-semaphore bound on snapshot recomputes
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   loadServerConfig(),
		Data:     loadDataConfig(),
		Pipeline: loadPipelineConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadDataConfig() DataConfig {
	return DataConfig{
		FilePath:  getEnvOrDefault("SUPERSTORE_FILE", ""),
		SheetName: getEnvOrDefault("SHEET_NAME", ""),
		DSN:       getEnvOrDefault("SUPERSTORE_DSN", ""),
		Table:     getEnvOrDefault("SUPERSTORE_TABLE", "superstore_orders"),
	}
}

func loadPipelineConfig() PipelineConfig {
	return PipelineConfig{
		TopN:                getEnvIntOrDefault("TOP_N", 10),
		MaxConcurrentBuilds: int64(getEnvIntOrDefault("MAX_CONCURRENT_SNAPSHOTS", 4)),
	}
}

func validateConfig(config *Config) error {
	if config.Data.FilePath == "" && config.Data.DSN == "" {
		return errors.ConfigInvalid("SUPERSTORE_FILE or SUPERSTORE_DSN is required")
	}
	if config.Data.DSN != "" && config.Data.Table == "" {
		return errors.ConfigInvalid("SUPERSTORE_TABLE is required when loading from a warehouse")
	}
	if config.Pipeline.TopN <= 0 {
		return errors.ConfigInvalid("TOP_N must be positive")
	}
	if config.Pipeline.MaxConcurrentBuilds <= 0 {
		return errors.ConfigInvalid("MAX_CONCURRENT_SNAPSHOTS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
