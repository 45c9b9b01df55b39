package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "secret")
	t.Setenv("POSTGRES_URL", "postgres://localhost/invoices")

	cfg, _, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "require", cfg.PostgresSSL)
	assert.Equal(t, 5*time.Minute, cfg.ViewCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("AUTH_SECRET", "secret")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, _, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestLoadConfig_RequiresAuthSecret(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")

	_, _, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	warnings := validateConfig(&Config{PostgresSSL: "sometimes", CookieSecure: true})

	assert.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "POSTGRES_URL")
	assert.Contains(t, warnings[1], "REDIS_ADDR")
	assert.Contains(t, warnings[2], "POSTGRES_SSL")
}
