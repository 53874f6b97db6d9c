// Package config loads user settings for the techradar CLI and service.
//
// Settings come from a YAML file (default $XDG_CONFIG_HOME/techradar/config.yaml),
// TECHRADAR_* environment variables and built-in defaults, merged by viper.
// The service additionally reads deployment overrides with [ParseServerEnv].
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/pipeline"
)

const appName = "techradar"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the merged settings tree.
type Config struct {
	Layout LayoutConfig `mapstructure:"layout"`
	Render RenderConfig `mapstructure:"render"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Store  StoreConfig  `mapstructure:"store"`
	Server ServerConfig `mapstructure:"server"`
}

// LayoutConfig holds default layout options.
type LayoutConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
	// Radial is "widened" (innermost ring gets ExtraRings more widths) or "equal"
	Radial     string `mapstructure:"radial"`
	ExtraRings int    `mapstructure:"extra_rings"`
	// Key is "name" or "record"
	Key       string `mapstructure:"key"`
	Placement string `mapstructure:"placement"`
}

// RenderConfig holds default render options.
type RenderConfig struct {
	Formats []string `mapstructure:"formats"`
	Style   string   `mapstructure:"style"`
	Legend  bool     `mapstructure:"legend"`
	Popups  bool     `mapstructure:"popups"`
	Scale   float64  `mapstructure:"scale"`
	RSVG    bool     `mapstructure:"rsvg"`
}

// CacheConfig selects where layouts and artifacts are cached.
type CacheConfig struct {
	// Backend is "file", "redis" or "none"
	Backend   string `mapstructure:"backend"`
	Dir       string `mapstructure:"dir"`
	RedisAddr string `mapstructure:"redis_addr"`
}

// StoreConfig locates the dataset store. Location is a directory, a SQLite
// file or a MongoDB URI (see store.Open).
type StoreConfig struct {
	Location       string `mapstructure:"location"`
	DefaultDataset string `mapstructure:"default_dataset"`
}

// ServerConfig configures `techradar serve`.
type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	BaseURL string `mapstructure:"base_url"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Layout: LayoutConfig{
			Width:      pipeline.DefaultWidth,
			Height:     pipeline.DefaultHeight,
			Radial:     "widened",
			ExtraRings: 1,
			Key:        "name",
			Placement:  pipeline.DefaultPlacement,
		},
		Render: RenderConfig{
			Formats: []string{pipeline.FormatSVG},
			Style:   pipeline.DefaultStyle,
			Popups:  true,
			Scale:   pipeline.DefaultScale,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			Dir:     CacheDir(),
		},
		Store: StoreConfig{
			Location: filepath.Join(DataDir(), "datasets"),
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// SetDefaults registers the built-in settings with v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("layout.width", defaults.Layout.Width)
	v.SetDefault("layout.height", defaults.Layout.Height)
	v.SetDefault("layout.radial", defaults.Layout.Radial)
	v.SetDefault("layout.extra_rings", defaults.Layout.ExtraRings)
	v.SetDefault("layout.key", defaults.Layout.Key)
	v.SetDefault("layout.placement", defaults.Layout.Placement)

	v.SetDefault("render.formats", defaults.Render.Formats)
	v.SetDefault("render.style", defaults.Render.Style)
	v.SetDefault("render.legend", defaults.Render.Legend)
	v.SetDefault("render.popups", defaults.Render.Popups)
	v.SetDefault("render.scale", defaults.Render.Scale)
	v.SetDefault("render.rsvg", defaults.Render.RSVG)

	v.SetDefault("cache.backend", defaults.Cache.Backend)
	v.SetDefault("cache.dir", defaults.Cache.Dir)
	v.SetDefault("cache.redis_addr", defaults.Cache.RedisAddr)

	v.SetDefault("store.location", defaults.Store.Location)
	v.SetDefault("store.default_dataset", defaults.Store.DefaultDataset)

	v.SetDefault("server.addr", defaults.Server.Addr)
	v.SetDefault("server.base_url", defaults.Server.BaseURL)
}

// Init prepares v: defaults, config file lookup and TECHRADAR_* environment
// variables (TECHRADAR_LAYOUT_RADIAL for layout.radial). A missing config
// file is not an error; an unreadable one is.
func Init(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TECHRADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return nil
}

// Load reads the settings from v and validates them.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, ValidationErrors(errs), "invalid config")
	}
	return &cfg, nil
}

// PipelineOptions converts the layout and render sections to pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:      c.Layout.Width,
		Height:     c.Layout.Height,
		Radial:     c.Layout.Radial,
		ExtraRings: c.Layout.ExtraRings,
		Key:        c.Layout.Key,
		Placement:  c.Layout.Placement,
		Formats:    append([]string(nil), c.Render.Formats...),
		Style:      c.Render.Style,
		Legend:     c.Render.Legend,
		Popups:     c.Render.Popups,
		Scale:      c.Render.Scale,
		RSVG:       c.Render.RSVG,
	}
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, ".config", appName)
}

// ConfigFile returns the path to the default config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// CacheDir returns the cache directory (~/.cache/techradar/).
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}

// DataDir returns the data directory (~/.local/share/techradar/).
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + appName
	}
	return filepath.Join(home, ".local", "share", appName)
}
