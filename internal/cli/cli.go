// Package cli implements the techradar command-line interface.
package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/techradar/internal/config"
	"github.com/matzehuels/techradar/pkg/buildinfo"
	"github.com/matzehuels/techradar/pkg/cache"
	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/pipeline"
	"github.com/matzehuels/techradar/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "techradar"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// configFlags maps command flags to the settings keys they override.
// A flag only takes effect when set on the command line.
var configFlags = map[string]string{
	"width":       "layout.width",
	"height":      "layout.height",
	"radial":      "layout.radial",
	"extra-rings": "layout.extra_rings",
	"key":         "layout.key",
	"placement":   "layout.placement",
	"style":       "render.style",
	"legend":      "render.legend",
	"popups":      "render.popups",
	"scale":       "render.scale",
	"rsvg":        "render.rsvg",
	"store":       "store.location",
	"addr":        "server.addr",
	"base-url":    "server.base_url",
}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfgFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Techradar lays out and renders technology radars",
		Long: `Techradar turns a list of technologies, each assigned to a quadrant and a
ring, into a deterministic radar chart. The same dataset always produces the
same picture.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default: "+config.ConfigFile()+")")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.legendCommand())
	root.AddCommand(c.datasetCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	root.AddCommand(c.versionCommand())

	return root
}

// =============================================================================
// Settings
// =============================================================================

// loadConfig merges defaults, the config file, TECHRADAR_* variables and the
// flags explicitly set on cmd.
func (c *CLI) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	for name, key := range configFlags {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "bind flag %s", name)
			}
		}
	}
	if err := config.Init(v, c.cfgFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded settings", "file", v.ConfigFileUsed(), "store", cfg.Store.Location, "cache", cfg.Cache.Backend)
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, newKeyer(cfg), c.Logger), nil
}

// redisKeyPrefix scopes cache keys in a Redis shared with other services.
const redisKeyPrefix = "techradar:"

func newKeyer(cfg *config.Config) cache.Keyer {
	if cfg.Cache.Backend == config.CacheRedis {
		return cache.NewScopedKeyer(nil, redisKeyPrefix)
	}
	return cache.NewDefaultKeyer()
}

func newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
	}
	return cache.NewFileCache(cacheDirOf(cfg))
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	s, err := store.Open(ctx, cfg.Store.Location)
	if err != nil {
		return nil, err
	}
	return store.Observe(s), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// setCLIDefaults fills opts with pipeline defaults for flag help text.
func setCLIDefaults(opts *pipeline.Options) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
	opts.Popups = true
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// baseName strips the directory and extension of a dataset path.
func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
