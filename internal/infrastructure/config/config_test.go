package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "http://localhost:8000", cfg.ServerURL)
	require.Equal(t, "development", cfg.Env)
	require.Equal(t, "file", cfg.Storage.Backend)
	require.Equal(t, ".weathersafe/session.json", cfg.Storage.SessionFile)
	require.Equal(t, "dkx4tszqm", cfg.Imaging.CloudName)
	require.Equal(t, "WeatherSafePreset", cfg.Imaging.UploadPreset)
	require.True(t, cfg.Push.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_URL", "https://api.weathersafe.ph")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "10.0.0.5:6379")
	t.Setenv("PUSH_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://api.weathersafe.ph", cfg.ServerURL)
	require.Equal(t, "redis", cfg.Storage.Backend)
	require.Equal(t, "10.0.0.5:6379", cfg.Storage.RedisAddr)
	require.False(t, cfg.Push.Enabled)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongodb")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown storage backend")
}
