package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
store:
  country: gb
  timeout: 15s
  requests_per_minute: 10
ui:
  default_category: music
  grid_columns: 5
history:
  enabled: false
logging:
  level: DEBUG
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.Store.BaseURL, "unset keys keep defaults")
	assert.Equal(t, "gb", cfg.Store.Country)
	assert.Equal(t, 15*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 10, cfg.Store.RequestsPerMinute)
	assert.Equal(t, "music", cfg.UI.DefaultCategory)
	assert.Equal(t, 5, cfg.UI.GridColumns)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 50, cfg.History.MaxEntries)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, path, cfg.File())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  country: us\n"), 0644))
	t.Setenv("STORESEARCH_STORE_COUNTRY", "de")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.Store.Country)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Store.Lang = "ja_jp"
	cfg.Store.Timeout = 5 * time.Second
	cfg.UI.GridRows = 3
	cfg.History.MaxEntries = 10

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "ja_jp", loaded.Store.Lang)
	assert.Equal(t, 5*time.Second, loaded.Store.Timeout)
	assert.Equal(t, 3, loaded.UI.GridRows)
	assert.Equal(t, 10, loaded.History.MaxEntries)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandHome("~/logs/app.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "app.log"), got)

	got, err = ExpandHome("/var/log/app.log")
	require.NoError(t, err)
	assert.Equal(t, "/var/log/app.log", got)
}
