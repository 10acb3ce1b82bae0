package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds runtime configuration parsed from environment variables.
// The same package serves both binaries; each reads the fields it needs.
type Config struct {
	// Client side.
	APIBaseURL          string
	TokenFile           string
	SessionCheckTimeout time.Duration

	// Mock backend.
	HTTPAddr        string
	DBPath          string
	JWTSecret       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		APIBaseURL:          envOrDefault("SHOP_API_URL", "http://localhost:9000"),
		TokenFile:           envOrDefault("SHOP_TOKEN_FILE", defaultTokenFile()),
		SessionCheckTimeout: envDuration("SESSION_CHECK_TIMEOUT_SECONDS", 8*time.Second),
		HTTPAddr:            envOrDefault("HTTP_ADDR", ":9000"),
		DBPath:              envOrDefault("MOCKAPI_DB", "./mockapi.db"),
		JWTSecret:           envOrDefault("JWT_SECRET", "dev-only-secret"),
		TokenTTL:            envDuration("TOKEN_TTL_SECONDS", 48*time.Hour),
		ShutdownTimeout:     envDuration("SHUTDOWN_TIMEOUT_SECONDS", 10*time.Second),
	}
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shopctl_token"
	}
	return filepath.Join(home, ".shopctl_token")
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		seconds, err := strconv.Atoi(v)
		if err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return def
}
