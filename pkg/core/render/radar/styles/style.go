package styles

import (
	"bytes"

	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
)

// Style defines the visual appearance of a radar.
// Implementations control how the structure, entries and popups are drawn.
type Style interface {
	// Name identifies the style in options and cache keys.
	Name() string
	// RenderDefs writes SVG <defs> content and style rules.
	RenderDefs(buf *bytes.Buffer)
	// RenderBackground writes anything drawn below the bands.
	RenderBackground(buf *bytes.Buffer, f Frame)
	// RenderBands writes every ring band.
	RenderBands(buf *bytes.Buffer, f Frame, bands []layout.Band)
	// RenderDivider writes the boundary line at the start of a sector.
	RenderDivider(buf *bytes.Buffer, f Frame, s layout.Sector)
	// RenderQuadrantLabel writes the name of a sector outside the outer ring.
	RenderQuadrantLabel(buf *bytes.Buffer, f Frame, s layout.Sector)
	// RenderRingLabels writes the names of the rings.
	RenderRingLabels(buf *bytes.Buffer, f Frame, bands []layout.Band)
	// RenderBlip writes the marker and label of a placed entry.
	RenderBlip(buf *bytes.Buffer, b Blip)
	// RenderPopup writes the hover popup for an entry.
	RenderPopup(buf *bytes.Buffer, b Blip)
}

// Frame is the radar disc within the canvas.
type Frame struct {
	CX, CY float64 // Center
	Radius float64 // Usable radius (outer edge of the last band)
}

// FrameOf extracts the frame of a layout structure.
func FrameOf(s layout.Structure) Frame {
	return Frame{CX: s.Center.X, CY: s.Center.Y, Radius: s.Radius}
}

// Blip contains all data needed to render a single entry.
type Blip struct {
	ID     string     // Entry name, used for DOM ids and events
	Label  string     // Display text including the movement symbol
	X, Y   float64    // Marker center
	Color  string     // Ring color
	URL    string     // Optional link target
	Popup  *PopupData // Hover popup content (nil if disabled)
}

// PopupData holds entry details displayed in hover popups.
type PopupData struct {
	Quadrant    string
	Ring        string
	Movement    string
	Description string // Plain text
	Tags        []string
}
