// Package styles defines visual styles for radar rendering.
//
// # Overview
//
// A [Style] decides how each element of the radar is drawn: the background,
// the ring bands, quadrant dividers, quadrant and ring labels, entry markers
// and their hover popups. Geometry always comes from the layout package, so
// switching styles never moves an entry.
//
// Two styles are provided:
//
//   - [Filled]: translucent ring colors on a grey disc, white dividers,
//     rotated quadrant labels and ring labels along the four axes.
//   - [Outline]: thin grey circles, ring names at the top of each ring and
//     numbered quadrant labels.
//
// Usage:
//
//	svg := sink.RenderSVG(l, sink.WithStyle(styles.Outline{}))
//
// Use [ByName] to resolve a style from a flag or request parameter.
package styles

import "github.com/matzehuels/techradar/pkg/errors"

// ByName resolves "filled" (or "") and "outline".
func ByName(name string) (Style, error) {
	switch name {
	case "", "filled":
		return Filled{}, nil
	case "outline":
		return Outline{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: filled, outline)", name)
}
