package config

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir stands in for t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "csv", cfg.Export.Format)
	assert.Empty(t, cfg.Plugins.Dirs)
	assert.False(t, cfg.Plugins.DisableDiscovery)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LLENS_LOG_LEVEL", "debug")
	t.Setenv("LLENS_BATCH_WORKERS", "8")
	t.Setenv("LLENS_EXPORT_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, "json", cfg.Export.Format)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad log level", key: "LLENS_LOG_LEVEL", value: "noisy"},
		{name: "bad log format", key: "LLENS_LOG_FORMAT", value: "xml"},
		{name: "bad worker count", key: "LLENS_BATCH_WORKERS", value: "0"},
		{name: "bad export format", key: "LLENS_EXPORT_FORMAT", value: "parquet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	logger := ConfigureLogging(cfg)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestConfigureLogging_InvalidLevelFallsBack(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "noisy"
	cfg.Log.Format = "text"

	logger := ConfigureLogging(cfg)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
