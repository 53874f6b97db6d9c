package layout

import (
	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/errors"
)

const (
	// DefaultPadding is the gap kept between the outermost ring and the canvas edge.
	DefaultPadding = 40.0
	// DefaultExtraRings is how many ring widths the innermost ring gains under PolicyWidened.
	DefaultExtraRings = 1
)

// Options controls structure and placement. The zero value is not useful;
// start from DefaultOptions.
type Options struct {
	Padding    float64      `json:"padding"`
	Radial     RadialPolicy `json:"radial"`
	ExtraRings int          `json:"extra_rings"`
	Key        KeyPolicy    `json:"key"`
	Margins    Margins      `json:"margins"`
}

// DefaultOptions returns the widened radial policy with name keys and refined margins.
func DefaultOptions() Options {
	return Options{
		Padding:    DefaultPadding,
		Radial:     PolicyWidened,
		ExtraRings: DefaultExtraRings,
		Key:        KeyName,
		Margins:    MarginsRefined,
	}
}

// Option configures a layout.
type Option func(*Options)

// WithPadding sets the outer padding.
func WithPadding(p float64) Option { return func(o *Options) { o.Padding = p } }

// WithRadialPolicy sets how rings share the radius.
func WithRadialPolicy(p RadialPolicy) Option { return func(o *Options) { o.Radial = p } }

// WithExtraRings sets the widening of the innermost ring under PolicyWidened.
func WithExtraRings(n int) Option { return func(o *Options) { o.ExtraRings = n } }

// WithKeyPolicy sets what identifies an entry for hashing.
func WithKeyPolicy(k KeyPolicy) Option { return func(o *Options) { o.Key = k } }

// WithMargins sets the placement margins.
func WithMargins(m Margins) Option { return func(o *Options) { o.Margins = m } }

// WithOptions replaces all options at once.
func WithOptions(opts Options) Option { return func(o *Options) { *o = opts } }

// Validate rejects option values the layout would otherwise coerce.
// Layout functions never fail, so callers that take options from users
// should validate first.
func (o Options) Validate() error {
	switch o.Radial {
	case PolicyEqual, PolicyWidened:
	default:
		return errors.New(errors.ErrCodeInvalidPolicy, "invalid radial policy: %q (must be one of: equal, widened)", o.Radial)
	}
	switch o.Key {
	case KeyName, KeyRecord:
	default:
		return errors.New(errors.ErrCodeInvalidPolicy, "invalid key policy: %q (must be one of: name, record)", o.Key)
	}
	if o.ExtraRings < 0 {
		return errors.New(errors.ErrCodeInvalidPolicy, "extra rings must not be negative")
	}
	if o.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidPolicy, "padding must not be negative")
	}
	m := o.Margins
	if m.Angle < 0 || m.Fraction < 0 || m.Spread < 0 || m.Fraction+m.Spread > 1 {
		return errors.New(errors.ErrCodeInvalidPolicy, "margins out of range: %+v", m)
	}
	return nil
}

func resolveOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Structure is the geometry shared by ring bands, dividers and entries.
type Structure struct {
	Width   float64  `json:"width"`
	Height  float64  `json:"height"`
	Center  Point    `json:"center"`
	Radius  float64  `json:"radius"`
	Bands   []Band   `json:"bands"`
	Sectors []Sector `json:"sectors"`
}

// ComputeStructure derives the center, usable radius, bands and sectors for a canvas.
func ComputeStructure(rings []radar.Ring, quadrants []radar.Quadrant, width, height float64, opts ...Option) Structure {
	return computeStructure(rings, quadrants, width, height, resolveOptions(opts))
}

func computeStructure(rings []radar.Ring, quadrants []radar.Quadrant, width, height float64, o Options) Structure {
	radius := UsableRadius(width, height, o.Padding)
	return Structure{
		Width:   width,
		Height:  height,
		Center:  Point{X: width / 2, Y: height / 2},
		Radius:  radius,
		Bands:   Bands(rings, radius, o.Radial, o.ExtraRings),
		Sectors: Sectors(quadrants),
	}
}

// Blip is a placed entry.
type Blip struct {
	Entry    radar.Entry `json:"entry"`
	Quadrant int         `json:"quadrant"`
	Ring     int         `json:"ring"`
	Color    string      `json:"color"`
	Polar
	Point
}

// LayoutEntries places every resolvable entry, preserving input order.
// Entries whose quadrant or ring is unknown are omitted.
func LayoutEntries(entries []radar.Entry, rings []radar.Ring, quadrants []radar.Quadrant, width, height float64, opts ...Option) []Blip {
	o := resolveOptions(opts)
	return placeAll(entries, rings, quadrants, computeStructure(rings, quadrants, width, height, o), o)
}

// placeAll resolves references against rings and quadrants; s.Bands and
// s.Sectors share their indexes.
func placeAll(entries []radar.Entry, rings []radar.Ring, quadrants []radar.Quadrant, s Structure, o Options) []Blip {
	blips := make([]Blip, 0, len(entries))
	for _, e := range entries {
		qi := radar.QuadrantIndex(quadrants, e.Quadrant)
		ri := radar.RingIndex(rings, e.Ring)
		if qi < 0 || ri < 0 {
			continue
		}
		p := Place(EntryKey(e, o.Key), s.Sectors[qi], s.Bands[ri], o.Margins)
		blips = append(blips, Blip{
			Entry:    e,
			Quadrant: qi,
			Ring:     ri,
			Color:    s.Bands[ri].Color,
			Polar:    p,
			Point:    p.Cartesian(s.Center),
		})
	}
	return blips
}

// Layout is a fully computed radar: structure plus placed entries.
type Layout struct {
	Title   string  `json:"title,omitempty"`
	Options Options `json:"options"`
	Structure
	Blips []Blip `json:"blips"`
}

// Build computes the structure and places all entries of cfg.
func Build(cfg radar.Config, width, height float64, opts ...Option) Layout {
	o := resolveOptions(opts)
	s := computeStructure(cfg.Rings, cfg.Quadrants, width, height, o)
	return Layout{
		Title:     cfg.Title,
		Options:   o,
		Structure: s,
		Blips:     placeAll(cfg.Entries, cfg.Rings, cfg.Quadrants, s, o),
	}
}

// Blip returns the placed entry with the given name.
func (l Layout) Blip(name string) (Blip, bool) {
	for _, b := range l.Blips {
		if b.Entry.Name == name {
			return b, true
		}
	}
	return Blip{}, false
}

// BlipsIn returns the blips of one quadrant in placement order.
func (l Layout) BlipsIn(quadrant int) []Blip {
	var out []Blip
	for _, b := range l.Blips {
		if b.Quadrant == quadrant {
			out = append(out, b)
		}
	}
	return out
}
