package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Exchange rate fetch
	RateEndpoint string
	RateTimeout  time.Duration
	RateFallback decimal.Decimal
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "defter"),
		DBPassword: getEnv("DB_PASSWORD", "defter"),
		DBName:     getEnv("DB_NAME", "defter"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT
		JWTSecret:        getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JWTExpirationDur: getDuration("JWT_EXPIRES_IN", 24*time.Hour),

		// Exchange rate fetch
		RateEndpoint: getEnv("RATE_ENDPOINT", "https://api.exchangerate-api.com/v4/latest/USD"),
		RateTimeout:  getDuration("RATE_TIMEOUT", 5*time.Second),
	}

	// The rate the client falls back to when the fetch fails or times out.
	fallbackStr := getEnv("RATE_FALLBACK", "39.89")
	fallback, err := decimal.NewFromString(fallbackStr)
	if err != nil {
		log.Printf("Warning: invalid RATE_FALLBACK value '%s', falling back to 39.89\n", fallbackStr)
		fallback = decimal.NewFromFloat(39.89)
	}
	config.RateFallback = fallback

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a duration environment variable, falling back on the
// default when unset or malformed.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	dur, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, value, defaultValue)
		return defaultValue
	}
	return dur
}
