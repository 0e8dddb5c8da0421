package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	perrors "github.com/zhubert/tenfoot/internal/errors"
)

// Layout names accepted by catalog.layout.
const (
	LayoutMovies = "movies"
	LayoutShows  = "shows"
	LayoutSports = "sports"
)

// Layouts lists the catalog layout variants in tab order.
var Layouts = []string{LayoutMovies, LayoutShows, LayoutSports}

// Config holds the application configuration
type Config struct {
	Focus   FocusConfig   `mapstructure:"focus"`
	State   StateConfig   `mapstructure:"state"`
	Log     LogConfig     `mapstructure:"log"`
	Catalog CatalogConfig `mapstructure:"catalog"`

	filePath string
}

// FocusConfig tunes the restoration engine's retry cap and delays.
type FocusConfig struct {
	MaxHandlesPerRow  int           `mapstructure:"max_handles_per_row"`
	MaxAttempts       int           `mapstructure:"max_attempts"`
	SettleDelay       time.Duration `mapstructure:"settle_delay"`
	ScrollSettleDelay time.Duration `mapstructure:"scroll_settle_delay"`
	RetryBackoff      time.Duration `mapstructure:"retry_backoff"`
}

// StateConfig controls where persisted focus state lives
type StateConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig controls the debug log
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Debug bool   `mapstructure:"debug"`
}

// CatalogConfig describes the simulated feeds backing the browse screen
type CatalogConfig struct {
	Layout      string        `mapstructure:"layout"`
	PageSize    int           `mapstructure:"page_size"`
	PageLatency time.Duration `mapstructure:"page_latency"`
	ItemsPerRow int           `mapstructure:"items_per_row"`
	Providers   []string      `mapstructure:"providers"`
	Catalogs    []string      `mapstructure:"catalogs"`
	Genres      []string      `mapstructure:"genres"`
	Failing     []string      `mapstructure:"failing"` // Row keys whose feed always errors
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "tenfoot"), nil
}

// configPath returns the config file path, honoring TENFOOT_CONFIG
func configPath() (string, error) {
	if override := os.Getenv("TENFOOT_CONFIG"); override != "" {
		return override, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// defaultStateDir returns ~/.tenfoot/state
func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tenfoot-state")
	}
	return filepath.Join(home, ".tenfoot", "state")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("focus.max_handles_per_row", 50)
	v.SetDefault("focus.max_attempts", 3)
	v.SetDefault("focus.settle_delay", 20*time.Millisecond)
	v.SetDefault("focus.scroll_settle_delay", 100*time.Millisecond)
	v.SetDefault("focus.retry_backoff", 50*time.Millisecond)

	v.SetDefault("state.dir", defaultStateDir())

	v.SetDefault("log.path", "/tmp/tenfoot-debug.log")
	v.SetDefault("log.debug", false)

	v.SetDefault("catalog.layout", LayoutMovies)
	v.SetDefault("catalog.page_size", 8)
	v.SetDefault("catalog.page_latency", 400*time.Millisecond)
	v.SetDefault("catalog.items_per_row", 40)
	v.SetDefault("catalog.providers", []string{"Netflix", "Prime Video", "Disney+", "Max", "Apple TV+"})
	v.SetDefault("catalog.catalogs", []string{"Trending", "Top Rated", "New Releases", "Continue Watching"})
	v.SetDefault("catalog.genres", []string{"Action", "Comedy", "Drama", "Documentary"})
	v.SetDefault("catalog.failing", []string{})
}

// Load reads the config from disk and the environment. A missing file is
// not an error: defaults apply. Env overrides use the TENFOOT_ prefix,
// e.g. TENFOOT_FOCUS_MAX_ATTEMPTS=5.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from an explicit file path.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetEnvPrefix("TENFOOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, perrors.ConfigLoadFailed(path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	cfg := &Config{filePath: path}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Path returns the config file this Config was loaded from
func (c *Config) Path() string {
	return c.filePath
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	if c.Focus.MaxHandlesPerRow <= 0 {
		return perrors.ConfigInvalid(fmt.Sprintf("focus.max_handles_per_row must be positive, got %d", c.Focus.MaxHandlesPerRow))
	}
	if c.Focus.MaxAttempts <= 0 {
		return perrors.ConfigInvalid(fmt.Sprintf("focus.max_attempts must be positive, got %d", c.Focus.MaxAttempts))
	}
	for name, d := range map[string]time.Duration{
		"focus.settle_delay":        c.Focus.SettleDelay,
		"focus.scroll_settle_delay": c.Focus.ScrollSettleDelay,
		"focus.retry_backoff":       c.Focus.RetryBackoff,
		"catalog.page_latency":      c.Catalog.PageLatency,
	} {
		if d < 0 {
			return perrors.ConfigInvalid(fmt.Sprintf("%s must not be negative, got %s", name, d))
		}
	}

	if !IsLayout(c.Catalog.Layout) {
		return perrors.ConfigInvalid(fmt.Sprintf("unknown catalog.layout %q", c.Catalog.Layout))
	}
	if c.Catalog.PageSize <= 0 {
		return perrors.ConfigInvalid(fmt.Sprintf("catalog.page_size must be positive, got %d", c.Catalog.PageSize))
	}
	if c.Catalog.ItemsPerRow < 0 {
		return perrors.ConfigInvalid(fmt.Sprintf("catalog.items_per_row must not be negative, got %d", c.Catalog.ItemsPerRow))
	}

	for _, group := range []struct {
		name  string
		items []string
	}{
		{"catalog.providers", c.Catalog.Providers},
		{"catalog.catalogs", c.Catalog.Catalogs},
		{"catalog.genres", c.Catalog.Genres},
	} {
		seen := make(map[string]bool)
		for _, item := range group.items {
			if item == "" {
				return perrors.ConfigInvalid(fmt.Sprintf("empty name in %s", group.name))
			}
			if seen[item] {
				return perrors.ConfigInvalid(fmt.Sprintf("duplicate name in %s: %s", group.name, item))
			}
			seen[item] = true
		}
	}

	return nil
}

// IsLayout reports whether name is a known catalog layout
func IsLayout(name string) bool {
	for _, l := range Layouts {
		if l == name {
			return true
		}
	}
	return false
}

// Save writes the config to its file as TOML, creating the directory if needed.
func (c *Config) Save() error {
	if c.filePath == "" {
		return perrors.ConfigInvalid("config has no file path")
	}
	if err := os.MkdirAll(filepath.Dir(c.filePath), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("focus.max_handles_per_row", c.Focus.MaxHandlesPerRow)
	v.Set("focus.max_attempts", c.Focus.MaxAttempts)
	v.Set("focus.settle_delay", c.Focus.SettleDelay.String())
	v.Set("focus.scroll_settle_delay", c.Focus.ScrollSettleDelay.String())
	v.Set("focus.retry_backoff", c.Focus.RetryBackoff.String())
	v.Set("state.dir", c.State.Dir)
	v.Set("log.path", c.Log.Path)
	v.Set("log.debug", c.Log.Debug)
	v.Set("catalog.layout", c.Catalog.Layout)
	v.Set("catalog.page_size", c.Catalog.PageSize)
	v.Set("catalog.page_latency", c.Catalog.PageLatency.String())
	v.Set("catalog.items_per_row", c.Catalog.ItemsPerRow)
	v.Set("catalog.providers", c.Catalog.Providers)
	v.Set("catalog.catalogs", c.Catalog.Catalogs)
	v.Set("catalog.genres", c.Catalog.Genres)
	v.Set("catalog.failing", c.Catalog.Failing)

	if err := v.WriteConfigAs(c.filePath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
