package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
	"github.com/matzehuels/techradar/pkg/core/render/radar/styles"
)

const (
	legendWidth      = 280.0
	legendGap        = 20.0
	legendPad        = 16.0
	legendLineH      = 16.0
	legendTitleSize  = 18.0
	legendHeadSize   = 13.0
	legendEntrySize  = 11.0
	legendSwatchSize = 10.0
)

// LegendSection groups the entries of one quadrant.
type LegendSection struct {
	Number   int           `json:"number"`
	Quadrant string        `json:"quadrant"`
	Entries  []LegendEntry `json:"entries"`
}

// LegendEntry is one line of the legend.
type LegendEntry struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Ring  string `json:"ring"`
	Color string `json:"color"`
	Link  string `json:"link,omitempty"`
}

// Legend lists the placed entries of l per quadrant, ordered by ring then input order.
func Legend(l layout.Layout) []LegendSection {
	sections := make([]LegendSection, len(l.Sectors))
	for i, s := range l.Sectors {
		sections[i] = LegendSection{Number: i + 1, Quadrant: s.Name}
	}
	for ri := range l.Bands {
		for _, b := range l.Blips {
			if b.Ring != ri {
				continue
			}
			sections[b.Quadrant].Entries = append(sections[b.Quadrant].Entries, LegendEntry{
				Name:  b.Entry.Name,
				Label: b.Entry.Label(),
				Ring:  l.Bands[ri].Name,
				Color: b.Color,
				Link:  b.Entry.Link,
			})
		}
	}
	return sections
}

func legendHeight(l layout.Layout) float64 {
	lines := 2 + len(l.Bands) + 1 + len(radar.Movements) + 1
	for _, s := range Legend(l) {
		lines += 1 + len(s.Entries) + 1
	}
	return legendPad*2 + float64(lines)*legendLineH
}

// renderLegend draws the ring key, the movement key and the per-quadrant entry
// list in a column starting at (x, y).
func renderLegend(buf *bytes.Buffer, l layout.Layout, x, y float64) {
	cy := y + legendPad + legendTitleSize
	tx := x + legendPad

	buf.WriteString(`  <g class="legend">` + "\n")
	if l.Title != "" {
		fmt.Fprintf(buf, `    <text class="legend-title" x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" font-weight="bold" fill="#222">%s</text>`+"\n",
			tx, cy, legendTitleSize, styles.EscapeXML(l.Title))
		cy += legendLineH * 1.5
	}

	for _, b := range l.Bands {
		fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.0f" height="%.0f" rx="2" fill="%s"/>`+"\n",
			tx, cy-legendSwatchSize+1, legendSwatchSize, legendSwatchSize, styles.EscapeXML(b.Color))
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" fill="#444">%s</text>`+"\n",
			tx+legendSwatchSize+6, cy, legendEntrySize, styles.EscapeXML(b.Name))
		cy += legendLineH
	}

	cy += legendLineH / 2
	for _, m := range radar.Movements {
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" fill="#666">%s %s</text>`+"\n",
			tx, cy, legendEntrySize, m.Symbol(), m.String())
		cy += legendLineH
	}

	for _, s := range Legend(l) {
		cy += legendLineH
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" font-weight="bold" fill="#333">%d. %s</text>`+"\n",
			tx, cy, legendHeadSize, s.Number, styles.EscapeXML(s.Quadrant))
		cy += legendLineH
		for _, e := range s.Entries {
			id := styles.EscapeXML(e.Name)
			fmt.Fprintf(buf, `    <g class="legend-entry" data-entry="%s">`+"\n", id)
			fmt.Fprintf(buf, `      <circle cx="%.2f" cy="%.2f" r="4" fill="%s"/>`+"\n", tx+4, cy-4, styles.EscapeXML(e.Color))
			fmt.Fprintf(buf, `      <text x="%.2f" y="%.2f" font-family="Helvetica, Arial, sans-serif" font-size="%.0f" fill="#444">%s</text>`+"\n",
				tx+14, cy, legendEntrySize, styles.EscapeXML(styles.Truncate(e.Label, 40)))
			buf.WriteString("    </g>\n")
			cy += legendLineH
		}
	}
	buf.WriteString("  </g>\n")
}
