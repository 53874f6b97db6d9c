package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. Failed stages are
// logged as warnings.
type LogHooks struct {
	logger *log.Logger
}

func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger.WithPrefix("obs")}
}

// Bundle returns h installed for all four event families.
func (h *LogHooks) Bundle() Hooks {
	return Hooks{Pipeline: h, Cache: h, Store: h, HTTP: h}
}

func (h *LogHooks) done(msg string, err error, kv ...any) {
	if err != nil {
		h.logger.Warn(msg, append(kv, "err", err)...)
		return
	}
	h.logger.Debug(msg, kv...)
}

func (h *LogHooks) OnParseStart(_ context.Context, path, format string) {
	h.logger.Debug("parse", "path", path, "format", format)
}

func (h *LogHooks) OnParseComplete(_ context.Context, path string, entries int, d time.Duration, err error) {
	h.done("parsed", err, "path", path, "entries", entries, "took", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, entries int) {
	h.logger.Debug("layout", "entries", entries)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, placed int, d time.Duration, err error) {
	h.done("laid out", err, "placed", placed, "took", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("rendered", err, "formats", formats, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *LogHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h *LogHooks) OnDatasetRead(_ context.Context, name string, found bool, d time.Duration) {
	h.logger.Debug("dataset read", "name", name, "found", found, "took", d)
}

func (h *LogHooks) OnDatasetWrite(_ context.Context, name string, entries int, d time.Duration, err error) {
	h.done("dataset written", err, "name", name, "entries", entries, "took", d)
}

func (h *LogHooks) OnDatasetDelete(_ context.Context, name string, err error) {
	h.done("dataset deleted", err, "name", name)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "took", d)
}
