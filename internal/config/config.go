// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	JWTTTL    time.Duration
	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment, after loading an optional
// .env file, and validates it. Missing optional keys fall back to defaults;
// JWT_SECRET is required because signing tokens with a guessable default
// would be worse than refusing to start.
func Load() (*Config, error) {
	// Absence of a .env file is fine; real env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DB_PATH", "./data/divvy.db"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	hours := getEnv("JWT_TTL_HOURS", "24")
	ttl, err := strconv.Atoi(hours)
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid JWT_TTL_HOURS %q", hours)
	}
	cfg.JWTTTL = time.Duration(ttl) * time.Hour

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q (want text or json)", c.LogFormat)
	}
	return nil
}

// Address returns the host:port pair for the HTTP server to bind to.
func (c *Config) Address() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
