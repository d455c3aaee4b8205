package config

import (
	"os"
)

type DatabaseConfig interface {
	GetConnectionString() string
}

// PostgresFromEnv builds the Postgres configuration from environment
// variables, falling back to local defaults.
func PostgresFromEnv() *PostgresConfig {
	return &PostgresConfig{
		Host:     getEnv("POSTGRES_HOST", "localhost"),
		Port:     getEnv("POSTGRES_PORT", "5432"),
		User:     getEnv("POSTGRES_USER", "postgres"),
		Password: getEnv("POSTGRES_PASSWORD", "postgres"),
		DBName:   getEnv("POSTGRES_NAME", "postgres"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
