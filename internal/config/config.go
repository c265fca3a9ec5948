package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// HTTP server
	Addr string

	// Storage configuration
	StorageDriver string
	SQLitePath    string
	DatabaseURL   string

	// Clerk configuration
	ClerkSecretKey string
	ClerkBaseURL   string

	// Analyser configuration
	AnalyserBaseURL string
	AnalysisTimeout time.Duration

	// Catalog token handling
	TokenSafetyMargin time.Duration
}

// Load returns a new Config instance with values loaded from environment
// variables. A .env file is honoured when present but not required.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] No .env file found, using system environment variables")
	}

	return &Config{
		Addr: getEnv("ADDR", ":8080"),

		StorageDriver: getEnv("STORAGE_DRIVER", "sqlite"),
		SQLitePath:    getEnv("SQLITE_PATH", "musejump.db"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		ClerkSecretKey: getEnv("CLERK_SECRET_KEY", ""),
		ClerkBaseURL:   getEnv("CLERK_BASE_URL", "https://api.clerk.com"),

		AnalyserBaseURL: getEnv("ANALYSER_URL", ""),
		AnalysisTimeout: getEnvAsDuration("ANALYSIS_TIMEOUT", 5*time.Minute),

		TokenSafetyMargin: getEnvAsDuration("TOKEN_SAFETY_MARGIN", time.Second),
	}
}

// Helper functions to get environment variables with default values
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
