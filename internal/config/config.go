// Package config provides configuration management for the credit scorer.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Input    InputConfig
	Output   OutputConfig
	Database DatabaseConfig
}

// InputConfig holds input file configuration.
type InputConfig struct {
	TransactionsFile string
}

// OutputConfig holds output configuration.
type OutputConfig struct {
	Dir string
}

// DatabaseConfig holds database configuration. DSNs are empty by default, in
// which case the application falls back to in-memory stores.
type DatabaseConfig struct {
	PostgresDSN   string
	ClickHouseDSN string
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	// .env file is optional - environment variables can be set directly
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := &Config{
		Input: InputConfig{
			TransactionsFile: getEnv("INPUT_FILE", "user-wallet-transactions.json"),
		},
		Output: OutputConfig{
			Dir: getEnv("OUTPUT_DIR", "output"),
		},
		Database: DatabaseConfig{
			PostgresDSN:   getEnv("POSTGRES_DSN", ""),
			ClickHouseDSN: getEnv("CLICKHOUSE_DSN", ""),
		},
	}

	return config, nil
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
