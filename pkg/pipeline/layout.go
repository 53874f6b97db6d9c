package pipeline

import (
	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
)

// GenerateLayout places every resolvable entry of cfg on the canvas described
// by opts. Call after ValidateForLayout.
func GenerateLayout(cfg radar.Config, opts Options) layout.Layout {
	l := layout.Build(cfg, opts.Width, opts.Height, layout.WithOptions(opts.LayoutOptions()))
	if opts.Logger != nil {
		if skipped := len(cfg.Entries) - len(l.Blips); skipped > 0 {
			opts.Logger.Warn("entries not placed: unknown quadrant or ring", "count", skipped)
		}
	}
	return l
}
