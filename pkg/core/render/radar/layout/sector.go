package layout

import (
	"math"

	"github.com/matzehuels/techradar/pkg/core/radar"
)

// Sector is the angular span of one quadrant, in radians.
// Start is inclusive and End exclusive.
type Sector struct {
	Index int     `json:"index"`
	Name  string  `json:"name"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Span returns the angular width of the sector.
func (s Sector) Span() float64 { return s.End - s.Start }

// Mid returns the bisecting angle.
func (s Sector) Mid() float64 { return (s.Start + s.End) / 2 }

// Contains reports whether angle lies in [Start, End).
func (s Sector) Contains(angle float64) bool { return angle >= s.Start && angle < s.End }

// AngleStep returns the sector width for n quadrants. n <= 0 is treated as 1.
func AngleStep(n int) float64 {
	return 2 * math.Pi / float64(max(n, 1))
}

// Sectors partitions the full circle into one sector per quadrant, in order.
func Sectors(quadrants []radar.Quadrant) []Sector {
	step := AngleStep(len(quadrants))
	sectors := make([]Sector, len(quadrants))
	for i, q := range quadrants {
		sectors[i] = Sector{
			Index: i,
			Name:  q.Name,
			Start: float64(i) * step,
			End:   float64(i+1) * step,
		}
	}
	return sectors
}
