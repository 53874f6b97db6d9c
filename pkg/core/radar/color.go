package radar

import "strings"

var semanticColors = map[string]string{
	"ADOPT":  "#2e7d32",
	"TRIAL":  "#1565c0",
	"ASSESS": "#f9a825",
	"HOLD":   "#c62828",
}

// Palette is used for rings without an explicit or semantic color.
var Palette = []string{"#2e7d32", "#1565c0", "#f9a825", "#6a1b9a"}

// RingColor returns the display color of the ring at index i.
func RingColor(r Ring, i int) string {
	if r.Color != "" {
		return r.Color
	}
	if c, ok := semanticColors[strings.ToUpper(strings.TrimSpace(r.Name))]; ok {
		return c
	}
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// RingColors resolves the color of every ring.
func RingColors(rings []Ring) []string {
	out := make([]string, len(rings))
	for i, r := range rings {
		out[i] = RingColor(r, i)
	}
	return out
}

// ShortName returns the part of a ring name before the first "/".
// "Adopt/Use" becomes "Adopt".
func ShortName(name string) string {
	if i := strings.IndexByte(name, '/'); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	return name
}
