package styles

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
)

const (
	filledBackground   = "#f0f0f0"
	filledBandOpacity  = 0.28
	filledQuadrantGap  = 14.0
	filledQuadrantFont = 16.0
	filledRingFont     = 12.0
)

// Filled draws translucent colored bands on a grey disc, white dividers and
// ring names repeated along the four axes. It is the default style.
type Filled struct{}

func (Filled) Name() string { return "filled" }

func (Filled) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <style>
    .blip-marker { transition: r 0.15s ease; cursor: pointer; }
    .blip:hover .blip-marker, .blip.active .blip-marker { r: 8; }
    .blip-label { pointer-events: none; }
  </style>
`)
}

func (Filled) RenderBackground(buf *bytes.Buffer, f Frame) {
	fmt.Fprintf(buf, `  <circle class="radar-background" cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
		f.CX, f.CY, f.Radius, filledBackground)
}

// RenderBands draws outermost first: each band is a colored disc with a white
// cutout at its inner radius, so inner bands paint over the cutout.
func (Filled) RenderBands(buf *bytes.Buffer, f Frame, bands []layout.Band) {
	for i := len(bands) - 1; i >= 0; i-- {
		b := bands[i]
		fmt.Fprintf(buf, `  <circle class="ring ring-%d" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f" stroke="white" stroke-width="2"/>`+"\n",
			b.Index, f.CX, f.CY, b.Outer, EscapeXML(b.Color), filledBandOpacity)
		if b.Inner > 0 {
			fmt.Fprintf(buf, `  <circle class="ring-cutout" cx="%.2f" cy="%.2f" r="%.2f" fill="white" stroke="white" stroke-width="2"/>`+"\n",
				f.CX, f.CY, b.Inner)
		}
	}
}

func (Filled) RenderDivider(buf *bytes.Buffer, f Frame, s layout.Sector) {
	fmt.Fprintf(buf, `  <line class="divider" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="white" stroke-width="2"/>`+"\n",
		f.CX, f.CY, f.CX+f.Radius*math.Cos(s.Start), f.CY+f.Radius*math.Sin(s.Start))
}

// RenderQuadrantLabel places the name just outside the outer ring, rotated
// to run along the circle.
func (Filled) RenderQuadrantLabel(buf *bytes.Buffer, f Frame, s layout.Sector) {
	mid := s.Mid()
	r := f.Radius + filledQuadrantGap
	x, y := f.CX+r*math.Cos(mid), f.CY+r*math.Sin(mid)
	fmt.Fprintf(buf, `  <text class="quadrant-label" x="%.2f" y="%.2f" transform="rotate(%.2f %.2f %.2f)" text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" fill="#999">%s</text>`+"\n",
		x, y, Degrees(mid+math.Pi/2), x, y, filledQuadrantFont, EscapeXML(s.Name))
}

// RenderRingLabels repeats each ring label on the four axes at the band's mid radius.
// Labels on the vertical axis are rotated to run along it.
func (Filled) RenderRingLabels(buf *bytes.Buffer, f Frame, bands []layout.Band) {
	for _, b := range bands {
		label := EscapeXML(RingLabel(b.Name))
		r := b.Mid()
		for k := 0; k < 4; k++ {
			angle := float64(k) * math.Pi / 2
			x, y := f.CX+r*math.Cos(angle), f.CY+r*math.Sin(angle)
			rotate := ""
			if !nearAxis(angle) {
				rotate = fmt.Sprintf(` transform="rotate(90 %.2f %.2f)"`, x, y)
			}
			fmt.Fprintf(buf, `  <text class="ring-label" x="%.2f" y="%.2f"%s text-anchor="middle" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" fill="#666">%s</text>`+"\n",
				x, y+3, rotate, filledRingFont, label)
		}
	}
}

func (Filled) RenderBlip(buf *bytes.Buffer, b Blip) {
	renderBlip(buf, b, "#333", "#333")
}

func (Filled) RenderPopup(buf *bytes.Buffer, b Blip) {
	renderPopup(buf, b, "white", "#ccc")
}
