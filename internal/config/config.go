package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort         int
	DatabaseDriver     string // "sqlite" or "postgres"
	DatabaseURL        string
	JWTSecret          string
	TokenTTL           time.Duration
	LogLevel           string
	CORSAllowedOrigins []string
}

// Load loads configuration from an optional .env file and environment
// variables, falling back to defaults.
func Load() (*Config, error) {
	// A missing .env is fine; the environment may be set another way.
	_ = godotenv.Load()

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		return nil, errors.New("TOKEN_TTL must be positive")
	}

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	driver := getEnv("DATABASE_DRIVER", "sqlite")
	if driver != "sqlite" && driver != "postgres" {
		return nil, errors.New("DATABASE_DRIVER must be sqlite or postgres")
	}

	return &Config{
		ServerPort:         port,
		DatabaseDriver:     driver,
		DatabaseURL:        getEnv("DATABASE_URL", "./todo.db"),
		JWTSecret:          secret,
		TokenTTL:           ttl,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
