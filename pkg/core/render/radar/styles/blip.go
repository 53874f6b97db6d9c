package styles

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	blipRadius     = 6.0
	blipLabelDX    = 10.0
	blipLabelDY    = 4.0
	blipFontSize   = 11.0
	popupWidth     = 240.0
	popupLineH     = 15.0
	popupPad       = 10.0
	popupWrapChars = 36
	popupMaxLines  = 4
)

// renderBlip draws the marker and label shared by all styles.
func renderBlip(buf *bytes.Buffer, b Blip, stroke, labelColor string) {
	id := EscapeXML(b.ID)
	link := ""
	if b.URL != "" {
		link = fmt.Sprintf(` data-link="%s"`, EscapeXML(b.URL))
	}
	fmt.Fprintf(buf, `  <g class="blip" id="blip-%s" data-entry="%s"%s>`+"\n", id, id, link)
	fmt.Fprintf(buf, `    <circle class="blip-marker" cx="%.2f" cy="%.2f" r="%.0f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		b.X, b.Y, blipRadius, EscapeXML(b.Color), stroke)
	fmt.Fprintf(buf, `    <text class="blip-label" x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" fill="%s">%s</text>`+"\n",
		b.X+blipLabelDX, b.Y+blipLabelDY, blipFontSize, labelColor, EscapeXML(b.Label))
	buf.WriteString("  </g>\n")
}

// popupLines builds the text rows of a popup, title first.
func popupLines(b Blip) []string {
	p := b.Popup
	lines := []string{b.ID}
	lines = append(lines, p.Quadrant+" · "+p.Ring)
	if p.Movement != "" {
		lines = append(lines, p.Movement)
	}
	if p.Description != "" {
		lines = append(lines, WrapText(p.Description, popupWrapChars, popupMaxLines)...)
	} else {
		lines = append(lines, "No description")
	}
	if len(p.Tags) > 0 {
		lines = append(lines, Truncate("#"+strings.Join(p.Tags, " #"), popupWrapChars))
	}
	return lines
}

// renderPopup draws a hidden details card that the interaction script positions and shows.
func renderPopup(buf *bytes.Buffer, b Blip, fill, border string) {
	if b.Popup == nil {
		return
	}
	lines := popupLines(b)
	h := popupPad*2 + float64(len(lines))*popupLineH

	fmt.Fprintf(buf, `  <g class="popup" data-for="%s" visibility="hidden" transform="translate(%.2f,%.2f)">`+"\n",
		EscapeXML(b.ID), b.X, b.Y)
	fmt.Fprintf(buf, `    <rect width="%.0f" height="%.0f" rx="6" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		popupWidth, h, fill, border)
	for i, line := range lines {
		weight, size, color := "normal", 11, "#555"
		if i == 0 {
			weight, size, color = "bold", 13, "#222"
		}
		fmt.Fprintf(buf, `    <text x="%.0f" y="%.0f" font-family="Helvetica, Arial, sans-serif" font-size="%d" font-weight="%s" fill="%s">%s</text>`+"\n",
			popupPad, popupPad+float64(i+1)*popupLineH-3, size, weight, color, EscapeXML(line))
	}
	buf.WriteString("  </g>\n")
}
