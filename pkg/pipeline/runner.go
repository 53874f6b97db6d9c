package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techradar/pkg/cache"
	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/observability"
)

// Runner executes the pipeline against a layout and artifact cache. The
// CLI builds one per command; the HTTP service shares one across requests,
// so a Runner holds no per-run state.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner fills nil arguments with a DefaultKeyer, a NullCache and
// log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute imports opts.Path and lays out and renders it. Rows the importer
// dropped are counted in Stats.Skipped.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.Path, opts.InputFormat)
	parseStart := time.Now()
	res, err := Parse(opts)
	parseTime := time.Since(parseStart)
	hooks.OnParseComplete(ctx, opts.Path, len(res.Config.Entries), parseTime, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("imported dataset",
		"path", opts.Path,
		"format", res.Format,
		"entries", len(res.Config.Entries),
		"duration", parseTime)

	result, err := r.ExecuteConfig(ctx, res.Config, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ParseTime = parseTime
	result.Stats.Skipped = res.Skipped
	return result, nil
}

// ExecuteConfig lays out and renders a dataset already in memory, such as
// one read from a store.
func (r *Runner) ExecuteConfig(ctx context.Context, cfg radar.Config, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	result := &Result{Config: cfg}
	stats := cfg.Stats()
	result.Stats.Entries = stats.Entries
	result.Stats.Unresolved = stats.Unresolved

	layoutStart := time.Now()
	l, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.ConfigHash, _ = cache.HashJSON(cfg)
	result.Stats.Placed = len(l.Blips)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"placed", len(l.Blips),
		"unresolved", stats.Unresolved,
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayoutWithCacheInfo returns the layout of cfg and whether it came
// from the cache. The key covers the dataset hash and every layout option.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, cfg radar.Config, opts Options) (layout.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}

	configHash, err := cache.HashJSON(cfg)
	if err != nil {
		return layout.Layout{}, false, errors.Wrap(errors.ErrCodeInternal, err, "hash dataset")
	}
	cacheKey := r.Keyer.LayoutKey(configHash, opts.LayoutKeyOpts())

	cacheHooks := observability.Cache()
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err != nil {
		r.Logger.Warn("layout cache read failed", "err", err)
	} else if hit {
		cached, err := layout.Unmarshal(data)
		if err == nil {
			cacheHooks.OnCacheHit(ctx, observability.KindLayout)
			return cached, true, nil
		}
		r.Logger.Debug("discarding unreadable cached layout", "err", err)
	}
	cacheHooks.OnCacheMiss(ctx, observability.KindLayout)

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(cfg.Entries))
	start := time.Now()
	l := GenerateLayout(cfg, opts)
	hooks.OnLayoutComplete(ctx, len(l.Blips), time.Since(start), nil)

	if data, err := layout.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("layout cache write failed", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, observability.KindLayout, len(data))
		}
	}
	return l, false, nil
}

func (r *Runner) GenerateLayout(ctx context.Context, cfg radar.Config, opts Options) (layout.Layout, error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, cfg, opts)
	return l, err
}

// RenderWithCacheInfo renders opts.Formats from l. Artifacts are keyed by the
// layout hash, so datasets that lay out identically share them. A partial
// hit renders every format again.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := layout.Marshal(l)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
		if err != nil {
			r.Logger.Warn("artifact cache read failed", "format", format, "err", err)
			break
		}
		if !hit {
			break
		}
		artifacts[format] = data
	}
	cacheHooks := observability.Cache()
	if len(artifacts) == len(opts.Formats) {
		cacheHooks.OnCacheHit(ctx, observability.KindArtifact)
		return artifacts, true, nil
	}
	cacheHooks.OnCacheMiss(ctx, observability.KindArtifact)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("artifact cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, observability.KindArtifact, len(data))
	}
	return rendered, false, nil
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
