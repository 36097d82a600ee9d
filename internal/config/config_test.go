package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GRADEWISE_API_URL", "https://grades.example.com/api")
	t.Setenv("GRADEWISE_TOKEN", "tok")
	t.Setenv("GRADEWISE_SUBJECT", "42")
	t.Setenv("GRADEWISE_TIMEOUT", "3s")
	t.Setenv("GRADEWISE_LISTEN", ":9090")
	t.Setenv("GRADEWISE_LOG_MODE", "prod")
	t.Setenv("GRADEWISE_DB", "/tmp/g.db")

	cfg := ConfigFromEnv()

	assert.Equal(t, "https://grades.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "tok", cfg.API.Token)
	assert.Equal(t, "42", cfg.API.SubjectID)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, "prod", cfg.Log.Mode)
	assert.Equal(t, "/tmp/g.db", cfg.DBPath)
	assert.NoError(t, cfg.Validate())
}

func TestConfigFromEnvBadTimeoutFallsBack(t *testing.T) {
	t.Setenv("GRADEWISE_TIMEOUT", "soon")
	assert.Equal(t, DefaultConfig().API.Timeout, ConfigFromEnv().API.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(c *Config) {}, ""},
		{"relative url", func(c *Config) { c.API.BaseURL = "/api" }, "GRADEWISE_API_URL"},
		{"missing subject", func(c *Config) { c.API.SubjectID = " " }, "GRADEWISE_SUBJECT"},
		{"negative timeout", func(c *Config) { c.API.Timeout = -time.Second }, "GRADEWISE_TIMEOUT"},
		{"bad log mode", func(c *Config) { c.Log.Mode = "loud" }, "GRADEWISE_LOG_MODE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.API.SubjectID = "1"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateServer(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.ValidateServer())

	cfg.Server.JWTSecret = "short"
	assert.ErrorContains(t, cfg.ValidateServer(), "GRADEWISE_JWT_SECRET")
}
