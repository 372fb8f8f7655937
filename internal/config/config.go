package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Valuation ValuationConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// ValuationConfig holds the settings driving daily valuation runs.
//
// HomeCurrency is the currency all totals are normalized into before
// aggregation. BaseCurrency is the currency the conversion rate is quoted
// against; one rate is fetched per reconcile run. Timezone names the
// reference location used to derive the calendar day keying snapshots and
// daily totals.
type ValuationConfig struct {
	HomeCurrency    string
	BaseCurrency    string
	Timezone        string
	RetentionDays   int    // DailyTotal rows older than this are purged; 0 disables
	RefreshSchedule string // cron expression for the scheduled refresh job
	SkipUnpriced    bool   // when true, holdings with no price contribute 0 to the total
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	retentionDays, err := getEnvInt("VALUATION_RETENTION_DAYS", 30)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/stock_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Valuation: ValuationConfig{
			HomeCurrency:    getEnv("HOME_CURRENCY", "INR"),
			BaseCurrency:    getEnv("BASE_CURRENCY", "USD"),
			Timezone:        getEnv("VALUATION_TIMEZONE", "UTC"),
			RetentionDays:   retentionDays,
			RefreshSchedule: getEnv("REFRESH_SCHEDULE", "0 18 * * *"),
			SkipUnpriced:    getEnvBool("VALUATION_SKIP_UNPRICED", true),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}

// getEnvBool gets a boolean environment variable or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
