package layout

import "github.com/matzehuels/techradar/pkg/core/radar"

// RadialPolicy selects how the usable radius is split among rings.
type RadialPolicy string

const (
	// PolicyEqual gives every ring the same width.
	PolicyEqual RadialPolicy = "equal"
	// PolicyWidened widens the innermost ring by extra ring widths.
	PolicyWidened RadialPolicy = "widened"
)

// Band is the radial span of one ring.
type Band struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Inner float64 `json:"inner"`
	Outer float64 `json:"outer"`
}

// Width returns the radial thickness of the band.
func (b Band) Width() float64 { return b.Outer - b.Inner }

// Mid returns the radius halfway through the band.
func (b Band) Mid() float64 { return (b.Inner + b.Outer) / 2 }

// Contains reports whether r lies in [Inner, Outer].
func (b Band) Contains(r float64) bool { return r >= b.Inner && r <= b.Outer }

// Bands splits radius among rings, innermost first.
//
// With PolicyEqual ring i spans [i·w, (i+1)·w] where w = radius/M.
// With PolicyWidened the unit is radius/(M+extra); ring 0 spans
// [0, (1+extra)·unit] and ring i>0 spans [(i+extra)·unit, (i+extra+1)·unit].
// The outermost band always ends at radius. Unknown policies are treated as
// PolicyWidened and a negative extra as 0.
func Bands(rings []radar.Ring, radius float64, policy RadialPolicy, extra int) []Band {
	if policy == PolicyEqual || extra < 0 {
		extra = 0
	}
	m := len(rings)
	total := m + extra
	unit := radius / float64(max(total, 1))

	edge := func(k int) float64 {
		if k >= total {
			return radius
		}
		return float64(k) * unit
	}

	bands := make([]Band, m)
	for i, r := range rings {
		inner, outer := edge(i+extra), edge(i+extra+1)
		if i == 0 {
			inner = 0
		}
		bands[i] = Band{
			Index: i,
			Name:  r.Name,
			Color: radar.RingColor(r, i),
			Inner: inner,
			Outer: outer,
		}
	}
	return bands
}

// UsableRadius returns min(width, height)/2 - padding, clamped at zero.
func UsableRadius(width, height, padding float64) float64 {
	return max(min(width, height)/2-padding, 0)
}
