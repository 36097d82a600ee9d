// Package config loads gradewise settings from GRADEWISE_* environment
// variables. Command-line flags override these values.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config holds all gradewise configuration.
type Config struct {
	API    APIConfig
	Server ServerConfig
	Log    LogConfig

	// DBPath overrides the local store location. Empty means the default.
	DBPath string
}

// APIConfig configures the client side of the grading service.
type APIConfig struct {
	BaseURL   string
	Token     string
	SubjectID string

	// Timeout bounds a single request. Zero uses the client default.
	Timeout time.Duration
}

// ServerConfig configures the reference server.
type ServerConfig struct {
	Listen    string
	JWTSecret string
}

// LogConfig configures zap.
type LogConfig struct {
	Mode string // "dev" or "prod"
	File string // TUI log destination; empty disables file logging
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080/api",
			Timeout: 15 * time.Second,
		},
		Server: ServerConfig{
			Listen:    ":8080",
			JWTSecret: "change-me-in-production",
		},
		Log: LogConfig{
			Mode: "dev",
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.API.BaseURL = envStr("GRADEWISE_API_URL", cfg.API.BaseURL)
	cfg.API.Token = envStr("GRADEWISE_TOKEN", cfg.API.Token)
	cfg.API.SubjectID = envStr("GRADEWISE_SUBJECT", cfg.API.SubjectID)
	cfg.API.Timeout = envDuration("GRADEWISE_TIMEOUT", cfg.API.Timeout)

	cfg.Server.Listen = envStr("GRADEWISE_LISTEN", cfg.Server.Listen)
	cfg.Server.JWTSecret = envStr("GRADEWISE_JWT_SECRET", cfg.Server.JWTSecret)

	cfg.Log.Mode = envStr("GRADEWISE_LOG_MODE", cfg.Log.Mode)
	cfg.Log.File = envStr("GRADEWISE_LOG_FILE", cfg.Log.File)

	cfg.DBPath = envStr("GRADEWISE_DB", cfg.DBPath)

	return cfg
}

// Validate checks the settings needed to talk to the grading service.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("GRADEWISE_API_URL must be an absolute URL, got %q", c.API.BaseURL)
	}
	if strings.TrimSpace(c.API.SubjectID) == "" {
		return fmt.Errorf("GRADEWISE_SUBJECT (or --subject) is required")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("GRADEWISE_TIMEOUT must not be negative")
	}
	switch strings.ToLower(c.Log.Mode) {
	case "dev", "development", "prod", "production":
	default:
		return fmt.Errorf("GRADEWISE_LOG_MODE must be 'dev' or 'prod', got %q", c.Log.Mode)
	}
	return nil
}

// ValidateServer checks the settings needed by the reference server.
func (c Config) ValidateServer() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("GRADEWISE_LISTEN is required")
	}
	if len(c.Server.JWTSecret) < 8 {
		return fmt.Errorf("GRADEWISE_JWT_SECRET must be at least 8 characters")
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
