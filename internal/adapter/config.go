package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the iTunes Store search endpoint
const DefaultBaseURL = "https://itunes.apple.com/search"

// envKeyReplacer maps nested keys to env names (store.base_url -> STORE_BASE_URL)
var envKeyReplacer = strings.NewReplacer(".", "_")

// Config holds all application configuration
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	UI      UIConfig      `mapstructure:"ui"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`

	// path of the file the config was read from (empty when defaults only)
	file string
}

// StoreConfig holds catalog API configuration
type StoreConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Country           string        `mapstructure:"country"` // ISO country code, empty = API default
	Lang              string        `mapstructure:"lang"`    // e.g. "en_us", empty = API default
	Timeout           time.Duration `mapstructure:"timeout"` // 0 = no client timeout
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultCategory string `mapstructure:"default_category"`
	GridColumns     int    `mapstructure:"grid_columns"` // 0 = fit to terminal
	GridRows        int    `mapstructure:"grid_rows"`    // 0 = fit to terminal
}

// HistoryConfig holds search history configuration
type HistoryConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	MaxEntries int    `mapstructure:"max_entries"`
	Path       string `mapstructure:"path"` // directory for the history db
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			BaseURL:           DefaultBaseURL,
			RequestsPerMinute: 20,
		},
		UI: UIConfig{
			DefaultCategory: "all",
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 50,
			Path:       defaultDataPath(),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "storesearch.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "storesearch")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "storesearch")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "storesearch")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "storesearch")
	}
}

// newViper creates a viper instance with defaults and environment overrides
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("store.base_url", def.Store.BaseURL)
	v.SetDefault("store.country", def.Store.Country)
	v.SetDefault("store.lang", def.Store.Lang)
	v.SetDefault("store.timeout", def.Store.Timeout)
	v.SetDefault("store.requests_per_minute", def.Store.RequestsPerMinute)
	v.SetDefault("ui.default_category", def.UI.DefaultCategory)
	v.SetDefault("ui.grid_columns", def.UI.GridColumns)
	v.SetDefault("ui.grid_rows", def.UI.GridRows)
	v.SetDefault("history.enabled", def.History.Enabled)
	v.SetDefault("history.max_entries", def.History.MaxEntries)
	v.SetDefault("history.path", def.History.Path)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	// STORESEARCH_STORE_COUNTRY overrides store.country, etc.
	v.SetEnvPrefix("STORESEARCH")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	return v
}

// LoadConfig loads configuration from file and environment.
// An empty path searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	v := newViper()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.file = v.ConfigFileUsed()

	return cfg, nil
}

// File returns the config file that was loaded, if any
func (c *Config) File() string {
	return c.file
}

// DefaultConfigFile returns the path SaveConfig writes to when none is given
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// SaveConfig writes the configuration to path, or to the default location when
// path is empty
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	v.Set("store.base_url", cfg.Store.BaseURL)
	v.Set("store.country", cfg.Store.Country)
	v.Set("store.lang", cfg.Store.Lang)
	v.Set("store.timeout", cfg.Store.Timeout.String())
	v.Set("store.requests_per_minute", cfg.Store.RequestsPerMinute)

	v.Set("ui.default_category", cfg.UI.DefaultCategory)
	v.Set("ui.grid_columns", cfg.UI.GridColumns)
	v.Set("ui.grid_rows", cfg.UI.GridRows)

	v.Set("history.enabled", cfg.History.Enabled)
	v.Set("history.max_entries", cfg.History.MaxEntries)
	v.Set("history.path", cfg.History.Path)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
