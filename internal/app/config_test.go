package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "json", cfg.Server.LogFormat)
	assert.Equal(t, 120, cfg.Server.RateLimit)
	assert.Equal(t, time.Minute, cfg.Server.RateLimitWindow)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./data/cinebase.sqlite", cfg.Database.Path)

	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)

	assert.Equal(t, "static", cfg.Auth.Mode)

	assert.True(t, cfg.Maintenance.Enabled)
	assert.Equal(t, "@hourly", cfg.Maintenance.Schedule)
	assert.Equal(t, 90*24*time.Hour, cfg.Maintenance.HistoryRetention)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
server:
  port: 9090
  log_level: debug
database:
  driver: postgres
  host: db.internal
  port: 5432
  name: cinebase
  user: svc
tmdb:
  api_key: file-key
  timeout: 3s
auth:
  mode: oidc
  oidc:
    issuer_url: https://id.example.com
maintenance:
  history_retention: 24h
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "file-key", cfg.TMDB.APIKey)
	assert.Equal(t, 3*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, "oidc", cfg.Auth.Mode)
	assert.Equal(t, "https://id.example.com", cfg.Auth.OIDC.IssuerURL)
	assert.Equal(t, 24*time.Hour, cfg.Maintenance.HistoryRetention)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("CINEBASE_SERVER_PORT", "7070")
	t.Setenv("CINEBASE_TMDB_API_KEY", "env-key")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "env-key", cfg.TMDB.APIKey)
}

func TestConfigValidate(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	// Missing API key fails.
	require.Error(t, cfg.Validate())

	cfg.TMDB.APIKey = "key"
	// Static mode without a secret fails.
	require.Error(t, cfg.Validate())

	cfg.Auth.Static.Secret = "secret"
	require.NoError(t, cfg.Validate())

	cfg.Auth.Mode = "oidc"
	require.Error(t, cfg.Validate())

	cfg.Auth.OIDC.IssuerURL = "https://id.example.com"
	require.NoError(t, cfg.Validate())

	cfg.Auth.Mode = "basic"
	require.Error(t, cfg.Validate())
}

func TestDatabaseConfigConnection(t *testing.T) {
	section := DatabaseConfig{
		Driver:   "postgres",
		Host:     "db.internal",
		Port:     5432,
		Name:     "cinebase",
		User:     "svc",
		Password: "pw",
	}

	conn := section.Connection()
	assert.Equal(t, "postgres", conn.Driver)
	assert.Equal(t, "db.internal", conn.Host)
	assert.Equal(t, 5432, conn.Port)
	assert.Equal(t, "cinebase", conn.Name)
	assert.Equal(t, "svc", conn.User)
	assert.Equal(t, "pw", conn.Password)
}
