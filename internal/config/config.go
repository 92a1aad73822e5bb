package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const defaultJWTSecret = "dev-secret-change-in-production"

// Store drivers understood by repository.Open.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
	DriverMemory   = "memory"
)

type Config struct {
	Port        string
	Env         string
	StoreDriver string
	DatabaseDSN string
	JWTSecret   string
	JWTExpiry   time.Duration
	LogLevel    string
	CORSOrigins []string
}

// Load reads the configuration from the environment. It fails when a value
// cannot be parsed or when production runs with the development JWT secret.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "3000"),
		Env:         getEnv("ENV", "development"),
		StoreDriver: getEnv("STORE_DRIVER", DriverMySQL),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/board?parseTime=true&clientFoundRows=true"),
		JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}

	expiry, err := time.ParseDuration(getEnv("JWT_EXPIRY", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("parsing JWT_EXPIRY: %w", err)
	}
	if expiry <= 0 {
		return Config{}, fmt.Errorf("JWT_EXPIRY must be positive, got %s", expiry)
	}
	cfg.JWTExpiry = expiry

	switch cfg.StoreDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.Env == "production" && cfg.JWTSecret == defaultJWTSecret {
		return Config{}, fmt.Errorf("JWT_SECRET must be set in production environment")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
