package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "tubemap.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "/srv/maps/london.json", cfg.Map.Path)
	assert.Equal(t, 16, cfg.Cache.Size)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"https://tube.example.com"}, cfg.CORS.AllowOrigins)
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	t.Setenv("TUBEMAP_ADDR", ":7070")
	t.Setenv("TUBEMAP_CACHE_SIZE", "0")
	t.Setenv("TUBEMAP_CACHE_TTL", "1m")
	t.Setenv("TUBEMAP_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(filepath.Join("testdata", "tubemap.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 0, cfg.Cache.Size)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
	assert.Equal(t, "/srv/maps/london.json", cfg.Map.Path)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(filepath.Join("testdata", "invalid.yaml"))
	assert.Error(t, err)

	t.Setenv("TUBEMAP_CACHE_SIZE", "lots")
	_, err = Load("")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("TUBEMAP_CACHE_SIZE", "-1")
	_, err := Load("")
	assert.ErrorContains(t, err, "cache.size")
}

func TestValidateMode(t *testing.T) {
	cfg := Default()
	cfg.Server.Mode = "turbo"
	assert.Error(t, cfg.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join("testdata", "absent.env")))

	os.Unsetenv("TUBEMAP_LOG_LEVEL")
	t.Cleanup(func() { os.Unsetenv("TUBEMAP_LOG_LEVEL") })
	require.NoError(t, LoadDotEnv(filepath.Join("testdata", "test.env")))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}
