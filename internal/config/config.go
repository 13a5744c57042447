package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	TablePrefix string
	CORSOrigins string
	// Retention sweep
	RetentionDays int // days a soft-deleted entity survives before hard delete
	CleanupHour   int // UTC hour of day the sweep runs (0-23)
	// Identity
	JWTSecret   string
	JWTTTLHours int
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   env,
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		TablePrefix:   getTablePrefix(env),
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:3000"),
		RetentionDays: getEnvInt("RETENTION_DAYS", 30),
		CleanupHour:   getEnvInt("CLEANUP_HOUR", 1),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTTTLHours:   getEnvInt("JWT_TTL_HOURS", 24),
		Debug:         getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
