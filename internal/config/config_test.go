// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"
)

var allVars = []string{
	"APP_HOST", "APP_PORT", "APP_ENV", "LOG_LEVEL",
	"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD", "PAGE_CACHE_TTL",
	"METRICS_ADDR", "SUBMISSION_EMAIL", "SUBMIT_RATE_PER_MIN", "CORS_ORIGINS", "TRUST_PROXY",
}

// clearEnv sets every variable Load reads to "", which envOrDefault treats
// the same as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allVars {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "0.0.0.0")
	check("Port", cfg.Port, "8080")
	check("Env", cfg.Env, "development")
	check("LogLevel", cfg.LogLevel, "info")
	check("ValkeyHost", cfg.ValkeyHost, "")
	check("ValkeyPort", cfg.ValkeyPort, "6379")
	check("MetricsAddr", cfg.MetricsAddr, "")
	check("SubmissionEmail", cfg.SubmissionEmail, DefaultSubmissionEmail)

	if cfg.PageCacheTTL != 5*time.Minute {
		t.Errorf("PageCacheTTL = %s, want 5m", cfg.PageCacheTTL)
	}
	if cfg.SubmitRatePerMin != 5 {
		t.Errorf("SubmitRatePerMin = %d, want 5", cfg.SubmitRatePerMin)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
	if cfg.CacheEnabled() {
		t.Error("CacheEnabled() should be false without VALKEY_HOST")
	}
	if cfg.TrustProxy {
		t.Error("TrustProxy should default to false")
	}
}

// TestLoad_EnvOverrides verifies that every environment variable properly
// overrides the default value.
func TestLoad_EnvOverrides(t *testing.T) {
	overrides := map[string]string{
		"APP_HOST":            "127.0.0.1",
		"APP_PORT":            "9090",
		"APP_ENV":             "testing",
		"LOG_LEVEL":           "debug",
		"VALKEY_HOST":         "cache.example.com",
		"VALKEY_PORT":         "6380",
		"VALKEY_PASSWORD":     "cachepass",
		"PAGE_CACHE_TTL":      "90s",
		"METRICS_ADDR":        ":9100",
		"SUBMISSION_EMAIL":    "curator@example.com",
		"SUBMIT_RATE_PER_MIN": "12",
		"CORS_ORIGINS":        "https://a.example.com, https://b.example.com,",
		"TRUST_PROXY":         "true",
	}
	for key, val := range overrides {
		t.Setenv(key, val)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "127.0.0.1")
	check("Port", cfg.Port, "9090")
	check("Env", cfg.Env, "testing")
	check("ValkeyAddr", cfg.ValkeyAddr(), "cache.example.com:6380")
	check("ValkeyPassword", cfg.ValkeyPassword, "cachepass")
	check("MetricsAddr", cfg.MetricsAddr, ":9100")
	check("SubmissionEmail", cfg.SubmissionEmail, "curator@example.com")

	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
	if cfg.PageCacheTTL != 90*time.Second {
		t.Errorf("PageCacheTTL = %s, want 90s", cfg.PageCacheTTL)
	}
	if cfg.SubmitRatePerMin != 12 {
		t.Errorf("SubmitRatePerMin = %d, want 12", cfg.SubmitRatePerMin)
	}
	wantOrigins := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(cfg.CORSOrigins, wantOrigins) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.CORSOrigins, wantOrigins)
	}
	if !cfg.TrustProxy {
		t.Error("TrustProxy should be true with TRUST_PROXY=true")
	}
	if !cfg.CacheEnabled() {
		t.Error("CacheEnabled() should be true with VALKEY_HOST set")
	}
}

// TestLoad_Invalid verifies that malformed values are rejected with an error
// naming the offending variable.
func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PAGE_CACHE_TTL", "soon"},
		{"PAGE_CACHE_TTL", "0s"},
		{"SUBMIT_RATE_PER_MIN", "many"},
		{"SUBMIT_RATE_PER_MIN", "0"},
		{"LOG_LEVEL", "chatty"},
		{"TRUST_PROXY", "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatal("Load() should return an error")
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("error should mention %s, got: %v", tt.key, err)
			}
		})
	}
}

// TestLoad_ProductionRequiresEmail verifies that production mode rejects an
// unusable submission address.
func TestLoad_ProductionRequiresEmail(t *testing.T) {
	t.Run("rejects malformed address", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")
		t.Setenv("SUBMISSION_EMAIL", "not an address")

		_, err := Load()
		if err == nil {
			t.Fatal("Load() should return an error for a malformed SUBMISSION_EMAIL")
		}
		if !strings.Contains(err.Error(), "SUBMISSION_EMAIL") {
			t.Errorf("error should mention SUBMISSION_EMAIL, got: %v", err)
		}
	})

	t.Run("accepts default address", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("APP_ENV", "production")

		if _, err := Load(); err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
	})

	t.Run("development allows anything", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SUBMISSION_EMAIL", "not an address")

		if _, err := Load(); err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
	})
}

// TestAddr verifies the server listen address format.
func TestAddr(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		port     string
		expected string
	}{
		{name: "default", host: "0.0.0.0", port: "8080", expected: "0.0.0.0:8080"},
		{name: "localhost with custom port", host: "127.0.0.1", port: "3000", expected: "127.0.0.1:3000"},
		{name: "empty host", host: "", port: "8080", expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Host: tt.host, Port: tt.port}
			if got := cfg.Addr(); got != tt.expected {
				t.Errorf("Addr() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestIsDev verifies the IsDev method for various environment modes.
func TestIsDev(t *testing.T) {
	tests := []struct {
		env      string
		expected bool
	}{
		{"development", true},
		{"production", false},
		{"testing", false},
		{"", false},
		{"Development", false},
	}

	for _, tt := range tests {
		t.Run("env="+tt.env, func(t *testing.T) {
			cfg := Config{Env: tt.env}
			if got := cfg.IsDev(); got != tt.expected {
				t.Errorf("IsDev() = %v, want %v", got, tt.expected)
			}
		})
	}
}

// TestSlogLevel_Fallback checks that a hand-built config with a bad level
// logs at info rather than failing.
func TestSlogLevel_Fallback(t *testing.T) {
	cfg := Config{LogLevel: "nope"}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("SlogLevel() = %v, want info", cfg.SlogLevel())
	}
	cfg.LogLevel = "WARN"
	if cfg.SlogLevel() != slog.LevelWarn {
		t.Errorf("SlogLevel() = %v, want warn", cfg.SlogLevel())
	}
}
