// Package observability lets applications watch what the radar engine does.
//
// The pipeline reports parse, layout and render stages, the runner reports
// layout and artifact cache lookups, the dataset store reports reads and
// writes, and the HTTP service reports requests. Each event family is a small
// interface; [Hooks] bundles one implementation of each. Nothing is installed
// by default and every event is dropped.
//
// # Usage
//
// Install a bundle once at startup, before serving or rendering:
//
//	observability.Install(observability.NewLogHooks(logger).Bundle())
//
// Libraries fetch the current hooks at the call site:
//
//	start := time.Now()
//	l := layout.Build(cfg, w, h)
//	observability.Pipeline().OnLayoutComplete(ctx, len(l.Blips), time.Since(start), nil)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the import → layout → render pipeline.
type PipelineHooks interface {
	OnParseStart(ctx context.Context, path, format string)
	OnParseComplete(ctx context.Context, path string, entries int, duration time.Duration, err error)

	// placed counts blips; entries whose quadrant or ring did not resolve
	// are not placed.
	OnLayoutStart(ctx context.Context, entries int)
	OnLayoutComplete(ctx context.Context, placed int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives layout and artifact cache lookups. kind is
// [KindLayout] or [KindArtifact].
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// Cache entry kinds.
const (
	KindLayout   = "layout"
	KindArtifact = "artifact"
)

// StoreHooks receives dataset store operations.
type StoreHooks interface {
	OnDatasetRead(ctx context.Context, name string, found bool, duration time.Duration)
	OnDatasetWrite(ctx context.Context, name string, entries int, duration time.Duration, err error)
	OnDatasetDelete(ctx context.Context, name string, err error)
}

// HTTPHooks receives requests served by the radar service. route is the
// matched chi pattern, e.g. "/api/v1/datasets/{name}/radar.{format}".
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// Hooks is a full set of observers. Nil fields are left unchanged by
// [Install].
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	Store    StoreHooks
	HTTP     HTTPHooks
}

// Discard drops every event.
type Discard struct{}

func (Discard) OnParseStart(context.Context, string, string)                           {}
func (Discard) OnParseComplete(context.Context, string, int, time.Duration, error)     {}
func (Discard) OnLayoutStart(context.Context, int)                                     {}
func (Discard) OnLayoutComplete(context.Context, int, time.Duration, error)            {}
func (Discard) OnRenderStart(context.Context, []string)                                {}
func (Discard) OnRenderComplete(context.Context, []string, time.Duration, error)       {}
func (Discard) OnCacheHit(context.Context, string)                                     {}
func (Discard) OnCacheMiss(context.Context, string)                                    {}
func (Discard) OnCacheSet(context.Context, string, int)                                {}
func (Discard) OnDatasetRead(context.Context, string, bool, time.Duration)             {}
func (Discard) OnDatasetWrite(context.Context, string, int, time.Duration, error)      {}
func (Discard) OnDatasetDelete(context.Context, string, error)                         {}
func (Discard) OnRequest(context.Context, string, string)                              {}
func (Discard) OnResponse(context.Context, string, string, int, time.Duration)         {}

func discardAll() *Hooks {
	return &Hooks{Pipeline: Discard{}, Cache: Discard{}, Store: Discard{}, HTTP: Discard{}}
}

var current atomic.Pointer[Hooks]

func init() { current.Store(discardAll()) }

// Install replaces the non-nil members of h. It returns a function that
// restores the previous set.
func Install(h Hooks) (restore func()) {
	prev := current.Load()
	next := *prev
	if h.Pipeline != nil {
		next.Pipeline = h.Pipeline
	}
	if h.Cache != nil {
		next.Cache = h.Cache
	}
	if h.Store != nil {
		next.Store = h.Store
	}
	if h.HTTP != nil {
		next.HTTP = h.HTTP
	}
	current.Store(&next)
	return func() { current.Store(prev) }
}

// Reset drops all installed hooks.
func Reset() { current.Store(discardAll()) }

func Pipeline() PipelineHooks { return current.Load().Pipeline }
func Cache() CacheHooks       { return current.Load().Cache }
func Store() StoreHooks       { return current.Load().Store }
func HTTP() HTTPHooks         { return current.Load().HTTP }
