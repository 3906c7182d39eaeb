package config

import (
	"log/slog"
	"os"
	"time"
)

type Config struct {
	Port        string
	Env         string
	DatabaseDSN string
	JWTSecret   string
	FrontendURL string
	SessionTTL  time.Duration
}

// IsProduction reports whether the app runs in production mode. It controls
// the Secure flag on the session cookie.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseDSN: getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/vibetrader?parseTime=true"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		SessionTTL:  7 * 24 * time.Hour,
	}

	if cfg.IsProduction() && cfg.JWTSecret == "dev-secret-change-in-production" {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
