package database

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds database configuration
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	// Timeout bounds both dialing and every statement against the hosted
	// store. There is no retry: a call that exceeds it fails.
	Timeout time.Duration
}

// NewConfig creates a new database configuration
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, we'll use defaults or environment variables
		fmt.Println("Warning: .env file not found")
	}

	return &Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "defter"),
		Password: getEnv("DB_PASSWORD", "defter"),
		DBName:   getEnv("DB_NAME", "defter"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
		Timeout:  getDuration("DB_TIMEOUT", 10*time.Second),
	}, nil
}

// DSN returns the PostgreSQL connection string. The configured timeout is
// carried in it twice: connect_timeout bounds dialing and statement_timeout
// makes the server cancel any statement that runs too long.
func (c *Config) DSN() string {
	connectSeconds := int(c.Timeout / time.Second)
	if connectSeconds < 1 {
		connectSeconds = 1
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d options='-c statement_timeout=%d'",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
		connectSeconds, c.Timeout.Milliseconds(),
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDuration retrieves a duration environment variable, falling back to the
// default when unset or malformed.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		fmt.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
