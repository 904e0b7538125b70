// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"log/slog"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSubmissionEmail is the curator inbox hidden-gem suggestions go to.
const DefaultSubmissionEmail = "johananfinnutalari@gmail.com"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host     string
	Port     string
	Env      string // "development", "production", "testing"
	LogLevel string

	// Valkey (Redis-compatible page cache). Empty host disables the cache.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	PageCacheTTL   time.Duration

	// Separate listener for /metrics. Empty serves it on the main router.
	MetricsAddr string

	// Hidden-gem submissions
	SubmissionEmail  string
	SubmitRatePerMin int

	// Allowed origins for /api/*
	CORSOrigins []string

	// TrustProxy takes the client address from X-Forwarded-For/X-Real-IP.
	// Only set it behind a reverse proxy that overwrites those headers.
	TrustProxy bool
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if values are
// malformed, or if critical values are unusable in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host:     envOrDefault("APP_HOST", "0.0.0.0"),
		Port:     envOrDefault("APP_PORT", "8080"),
		Env:      envOrDefault("APP_ENV", "development"),
		LogLevel: envOrDefault("LOG_LEVEL", "info"),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		MetricsAddr: os.Getenv("METRICS_ADDR"),

		SubmissionEmail: envOrDefault("SUBMISSION_EMAIL", DefaultSubmissionEmail),
		CORSOrigins:     splitList(envOrDefault("CORS_ORIGINS", "*")),
	}

	ttl, err := time.ParseDuration(envOrDefault("PAGE_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("PAGE_CACHE_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("PAGE_CACHE_TTL must be positive, got %s", ttl)
	}
	cfg.PageCacheTTL = ttl

	rate, err := strconv.Atoi(envOrDefault("SUBMIT_RATE_PER_MIN", "5"))
	if err != nil {
		return nil, fmt.Errorf("SUBMIT_RATE_PER_MIN: %w", err)
	}
	if rate < 1 {
		return nil, fmt.Errorf("SUBMIT_RATE_PER_MIN must be at least 1, got %d", rate)
	}
	cfg.SubmitRatePerMin = rate

	trust, err := strconv.ParseBool(envOrDefault("TRUST_PROXY", "false"))
	if err != nil {
		return nil, fmt.Errorf("TRUST_PROXY: %w", err)
	}
	cfg.TrustProxy = trust

	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	if cfg.Env == "production" {
		if _, err := mail.ParseAddress(cfg.SubmissionEmail); err != nil {
			return nil, fmt.Errorf("SUBMISSION_EMAIL must be a valid address in production: %w", err)
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether a Valkey host is configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// ValkeyAddr returns the Valkey address (host:port).
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.ValkeyHost, c.ValkeyPort)
}

// SlogLevel returns the configured log level. Load has already rejected
// unknown names, so this falls back to info only for hand-built configs.
func (c *Config) SlogLevel() slog.Level {
	lvl, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return lvl, nil
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
