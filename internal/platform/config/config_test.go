package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.smashcast.tv", cfg.APIBaseURL)
	assert.Equal(t, "https://edge.sf.hitbox.tv", cfg.MediaBaseURL)
	assert.Equal(t, "desktop", cfg.AppName)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.HasCredentials())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SMASHCAST_API_URL", "http://localhost:9090")
	t.Setenv("SMASHCAST_AUTH_TOKEN", "token123")
	t.Setenv("HTTP_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9090", cfg.APIBaseURL)
	assert.Equal(t, "token123", cfg.AuthToken)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.HasCredentials())
}

func TestLoad_LoginWithoutPassword(t *testing.T) {
	t.Setenv("SMASHCAST_LOGIN", "jens1o")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, "SMASHCAST_LOGIN and SMASHCAST_PASSWORD must be set together", err.Error())
}

func TestLoad_LoginAndPassword(t *testing.T) {
	t.Setenv("SMASHCAST_LOGIN", "jens1o")
	t.Setenv("SMASHCAST_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.HasCredentials())
}
