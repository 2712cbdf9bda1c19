package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieName(t *testing.T) {
	insecure := SessionConfig{Secure: false}
	assert.Equal(t, "gym-tracker.session-token", insecure.CookieName())

	secure := SessionConfig{Secure: true}
	assert.Equal(t, "__Secure-gym-tracker.session-token", secure.CookieName())
}

func TestLoadConfigRequiresOAuthCredentials(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadConfig(dir)
	assert.Error(t, err, "missing client credentials must fail fast")
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("OAUTH_CLIENT_ID", "gym-tracker")
	t.Setenv("OAUTH_CLIENT_SECRET", "secret")
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("DATABASE_DSN", ":memory:")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, ":memory:", cfg.Database.DSN)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "llama3", cfg.AI.Model)
}
