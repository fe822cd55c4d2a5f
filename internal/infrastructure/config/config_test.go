package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbpupil/measurement-converter/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "density-converter", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Converter.StrictMaterial)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DENSITY_CONVERTER_STRICT_MATERIAL", "true")
	t.Setenv("DENSITY_SERVER_READ_TIMEOUT", "5s")
	t.Setenv("DENSITY_LOG_FORMAT", "console")
	t.Setenv("PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.Converter.StrictMaterial)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadWith_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("converter:\n  strict_material: true\nmetrics:\n  namespace: weights\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	v := config.New()
	v.AddConfigPath(dir)
	cfg, err := config.LoadWith(v)
	require.NoError(t, err)

	assert.True(t, cfg.Converter.StrictMaterial)
	assert.Equal(t, "weights", cfg.Metrics.Namespace)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("DENSITY_LOG_FORMAT", "xml")

	_, err := config.Load()
	assert.ErrorContains(t, err, "log.format")
}

func TestValidate(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	cfg.RateLimit.Burst = 0
	assert.Error(t, cfg.Validate())

	cfg.RateLimit.Enabled = false
	assert.NoError(t, cfg.Validate())

	cfg.Metrics.Path = "metrics"
	assert.Error(t, cfg.Validate())
}
