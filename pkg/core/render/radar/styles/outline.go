package styles

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
)

const (
	outlineRingStroke    = "#ddd"
	outlineDividerStroke = "#e0e0e0"
	outlineQuadrantGap   = 20.0
)

// Outline draws thin ring circles with the ring name at the top of each ring
// and numbered quadrant labels anchored away from the center.
type Outline struct{}

func (Outline) Name() string { return "outline" }

func (Outline) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <style>
    .blip-marker { transition: r 0.15s ease; cursor: pointer; }
    .blip:hover .blip-marker, .blip.active .blip-marker { r: 8; }
    .blip-label { pointer-events: none; }
  </style>
`)
}

func (Outline) RenderBackground(buf *bytes.Buffer, f Frame) {}

func (Outline) RenderBands(buf *bytes.Buffer, f Frame, bands []layout.Band) {
	for _, b := range bands {
		fmt.Fprintf(buf, `  <circle class="ring ring-%d" cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
			b.Index, f.CX, f.CY, b.Outer, outlineRingStroke)
	}
}

func (Outline) RenderDivider(buf *bytes.Buffer, f Frame, s layout.Sector) {
	fmt.Fprintf(buf, `  <line class="divider" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1"/>`+"\n",
		f.CX, f.CY, f.CX+f.Radius*math.Cos(s.Start), f.CY+f.Radius*math.Sin(s.Start), outlineDividerStroke)
}

// RenderQuadrantLabel writes "n. name" outside the outer ring. Labels on the
// left half are anchored at their end so they grow away from the disc.
func (Outline) RenderQuadrantLabel(buf *bytes.Buffer, f Frame, s layout.Sector) {
	mid := s.Mid()
	r := f.Radius + outlineQuadrantGap
	anchor := "start"
	if mid > math.Pi/2 && mid < 3*math.Pi/2 {
		anchor = "end"
	}
	fmt.Fprintf(buf, `  <text class="quadrant-label" x="%.2f" y="%.2f" text-anchor="%s" font-family="Helvetica, Arial, sans-serif" font-size="14" font-weight="bold" fill="#555">%d. %s</text>`+"\n",
		f.CX+r*math.Cos(mid), f.CY+r*math.Sin(mid), anchor, s.Index+1, EscapeXML(s.Name))
}

func (Outline) RenderRingLabels(buf *bytes.Buffer, f Frame, bands []layout.Band) {
	for _, b := range bands {
		fmt.Fprintf(buf, `  <text class="ring-label" x="%.2f" y="%.2f" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="12" fill="#999">%s</text>`+"\n",
			f.CX, f.CY-b.Outer+16, EscapeXML(b.Name))
	}
}

func (Outline) RenderBlip(buf *bytes.Buffer, b Blip) {
	renderBlip(buf, b, "#333", "#444")
}

func (Outline) RenderPopup(buf *bytes.Buffer, b Blip) {
	renderPopup(buf, b, "#fafafa", "#ddd")
}
