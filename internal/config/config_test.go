package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func setRequired(t *testing.T) {
	t.Setenv("SQLITE_PATH", t.TempDir()+"/test.db")
	t.Setenv("JWT_SECRET", secret)
	t.Setenv("COOKIE_SECRET", secret)
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, DatabaseSQLite, cfg.DatabaseKind())
	assert.True(t, cfg.CookieSecure)
	assert.False(t, cfg.AuthBypass)
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequired(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db?sslmode=disable")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("REFRESH_TOKEN_TTL", "24h")
	t.Setenv("PERFORMANCE_MONITORING", "true")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DatabasePostgres, cfg.DatabaseKind())
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL)
	assert.True(t, cfg.PerformanceMonitoring)
	assert.True(t, cfg.TrustProxy)
}

func TestValidate(t *testing.T) {
	valid := Config{
		SQLitePath:         "x.db",
		JWTSecret:          secret,
		CookieSecret:       secret,
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    time.Hour,
		LoginRatePerMinute: 10,
	}
	require.NoError(t, valid.Validate())

	cases := map[string]func(c *Config){
		"DATABASE_URL or SQLITE_PATH": func(c *Config) { c.SQLitePath = "" },
		"JWT_SECRET":                  func(c *Config) { c.JWTSecret = "short" },
		"COOKIE_SECRET":               func(c *Config) { c.CookieSecret = "short" },
		"REFRESH_TOKEN_TTL":           func(c *Config) { c.RefreshTokenTTL = time.Minute },
		"AUTH_BYPASS":                 func(c *Config) { c.AuthBypass = true; c.Environment = "production" },
	}
	for want, mutate := range cases {
		c := valid
		mutate(&c)
		err := c.Validate()
		require.Error(t, err, want)
		assert.True(t, strings.Contains(err.Error(), want), "%q should mention %q", err, want)
	}
}
