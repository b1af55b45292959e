package adapter

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeFile(t, "config.yaml", `
catalog:
  base_url: https://catalog.example.com/
  country: gb
  timeout: 5s
  max_retries: 1
  rate_limit:
    requests_per_second: 4
    burst: 2
ui:
  default_genre: Drama
  sort_by_rating: true
logging:
  file: /tmp/marquee-test.log
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://catalog.example.com", cfg.Catalog.BaseURL)
	assert.Equal(t, "GB", cfg.Catalog.Country)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 1, cfg.Catalog.MaxRetries)
	assert.InDelta(t, 4.0, cfg.Catalog.RateLimit.RequestsPerSecond, 1e-9)
	assert.Equal(t, 2, cfg.Catalog.RateLimit.Burst)
	assert.Equal(t, "Drama", cfg.UI.DefaultGenre)
	assert.True(t, cfg.UI.SortByRating)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}

func TestLoadConfig_DefaultsWhenKeysMissing(t *testing.T) {
	path := writeFile(t, "config.yaml", "ui:\n  sort_by_rating: true\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.Catalog, cfg.Catalog)
	assert.Equal(t, "all", cfg.UI.DefaultGenre)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", "catalog:\n  country: US\n")
	t.Setenv("MARQUEE_CATALOG_COUNTRY", "de")
	t.Setenv("MARQUEE_CATALOG_TIMEOUT", "10s")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "DE", cfg.Catalog.Country)
	assert.Equal(t, 10*time.Second, cfg.Catalog.Timeout)
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	path := writeFile(t, "config.yaml", `
catalog:
  base_url: not a url
  country: USA
  rate_limit:
    requests_per_second: 0
logging:
  level: LOUD
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "catalog.base_url must be a valid URL")
	assert.Contains(t, msg, "catalog.country must be a two-letter country code")
	assert.Contains(t, msg, "catalog.rate_limit.requests_per_second must be greater than 0")
	assert.Contains(t, msg, "logging.level must be one of")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.Catalog.Country = "CA"
	cfg.UI.SortByRating = true

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Catalog, loaded.Catalog)
	assert.Equal(t, cfg.UI, loaded.UI)
}

func TestLoadDotEnv(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	path := writeFile(t, ".env", "MARQUEE_DOTENV_PROBE=loaded\n")
	t.Setenv("MARQUEE_DOTENV_PROBE", "")
	os.Unsetenv("MARQUEE_DOTENV_PROBE")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("MARQUEE_DOTENV_PROBE"))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLogLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("bogus"))
}

func TestSetupLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "marquee.log")
	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "INFO"})
	require.NoError(t, err)

	logger.Info("hello", "count", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"count":3`)
}
