package layout

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/techradar/pkg/core/radar"
)

// Point is a position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polar is a position relative to the radar center.
type Polar struct {
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
}

// Cartesian converts p to canvas coordinates around center.
func (p Polar) Cartesian(center Point) Point {
	return Point{
		X: center.X + p.Radius*math.Cos(p.Angle),
		Y: center.Y + p.Radius*math.Sin(p.Angle),
	}
}

// Margins keep entries off the dividers and band edges.
//
// Angle is an inset in radians from the sector start. Fraction is the share
// of the band kept clear at the inner edge and Spread the share the entry may
// occupy beyond it, so Fraction+Spread should stay below 1.
type Margins struct {
	Angle    float64 `json:"angle"`
	Fraction float64 `json:"fraction"`
	Spread   float64 `json:"spread"`
}

var (
	// MarginsSimple spreads entries over the whole sector.
	MarginsSimple = Margins{Angle: 0, Fraction: 0.15, Spread: 0.7}
	// MarginsRefined additionally insets entries from the sector start.
	MarginsRefined = Margins{Angle: 0.05, Fraction: 0.1, Spread: 0.8}
)

// MarginsByName resolves the preset names "simple" and "refined".
func MarginsByName(name string) (Margins, bool) {
	switch name {
	case "simple":
		return MarginsSimple, true
	case "refined", "":
		return MarginsRefined, true
	}
	return Margins{}, false
}

// KeyPolicy selects what identifies an entry for hashing.
type KeyPolicy string

const (
	// KeyName hashes the entry name. Editing other fields never moves the entry.
	KeyName KeyPolicy = "name"
	// KeyRecord hashes the canonical JSON of the entry, so any edit moves it.
	KeyRecord KeyPolicy = "record"
)

// EntryKey returns the hash key of e under policy.
func EntryKey(e radar.Entry, policy KeyPolicy) string {
	if policy == KeyRecord {
		if b, err := json.Marshal(e); err == nil {
			return string(b)
		}
	}
	return e.Name
}

// Place positions key inside the cell formed by s and b.
//
// The angular inset is capped at half the sector span so very narrow sectors
// still contain their entries.
func Place(key string, s Sector, b Band, m Margins) Polar {
	seedAngle := HashUnit(key)
	seedRadius := HashUnit(key + "_2")

	inset := min(max(m.Angle, 0), s.Span()/2)
	return Polar{
		Angle:  s.Start + inset + (s.End-s.Start-inset)*seedAngle,
		Radius: b.Inner + (b.Outer-b.Inner)*(m.Fraction+m.Spread*seedRadius),
	}
}
