package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
	"github.com/matzehuels/techradar/pkg/core/render/radar/styles"
)

// Hover and click on an entry are reported to the page as DOM CustomEvents
// named radar:hover and radar:select with detail {name}. A hover ending
// reports name null. Hover and selection state belong to the embedding page.
const blipInteractionJS = `
    function notify(type, name) {
      document.dispatchEvent(new CustomEvent(type, { detail: { name: name } }));
    }
    function activate(name, on) {
      document.querySelectorAll('.blip, .legend-entry').forEach(el => {
        if (el.dataset.entry === name) el.classList.toggle('active', on);
      });
    }
    document.querySelectorAll('.blip, .legend-entry').forEach(el => {
      const name = el.dataset.entry;
      el.addEventListener('mouseenter', () => { activate(name, true); notify('radar:hover', name); });
      el.addEventListener('mouseleave', () => { activate(name, false); notify('radar:hover', null); });
      el.addEventListener('click', () => notify('radar:select', name));
    });`

const popupCSS = `
    .popup { pointer-events: none; transition: opacity 0.15s ease; }
    .popup[visibility="hidden"] { opacity: 0; }
    .popup[visibility="visible"] { opacity: 1; }`

const popupJS = `
    const svg = document.querySelector('svg.techradar');
    const vb = svg.viewBox.baseVal;
    document.querySelectorAll('.blip').forEach(el => {
      const popup = document.querySelector('.popup[data-for="' + CSS.escape(el.dataset.entry) + '"]');
      if (!popup) return;
      el.addEventListener('mouseenter', () => {
        const box = el.getBBox();
        const pb = popup.getBBox();
        let x = box.x + box.width / 2 - pb.width / 2;
        let y = box.y + box.height + 10;
        if (y + pb.height > vb.y + vb.height - 10) y = box.y - pb.height - 8;
        x = Math.max(vb.x + 10, Math.min(x, vb.x + vb.width - pb.width - 10));
        popup.setAttribute('transform', 'translate(' + x.toFixed(1) + ',' + y.toFixed(1) + ')');
        popup.setAttribute('visibility', 'visible');
      });
      el.addEventListener('mouseleave', () => popup.setAttribute('visibility', 'hidden'));
    });`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	legend      bool
	popups      bool
	interactive bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithLegend() SVGOption              { return func(r *svgRenderer) { r.legend = true } }
func WithPopups() SVGOption              { return func(r *svgRenderer) { r.popups = true } }

// WithStatic omits scripts, for consumers that cannot run them (rsvg, PDF).
func WithStatic() SVGOption { return func(r *svgRenderer) { r.interactive = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Filled{}, interactive: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the radar structure and all placed entries.
// Drawing order is background, bands, dividers, labels, entries, popups.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	totalWidth, totalHeight := calculateDimensions(l, r.legend)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" class="techradar" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		totalWidth, totalHeight, totalWidth, totalHeight)
	if l.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", styles.EscapeXML(l.Title))
	}

	r.style.RenderDefs(&buf)
	renderStructure(&buf, r.style, l.Structure)

	blips := buildBlips(l, r.popups)
	for _, b := range blips {
		r.style.RenderBlip(&buf, b)
	}

	if r.legend {
		renderLegend(&buf, l, l.Width+legendGap, 0)
	}

	if r.popups {
		for _, b := range blips {
			r.style.RenderPopup(&buf, b)
		}
	}

	if r.interactive {
		renderInteraction(&buf, r.popups)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func calculateDimensions(l layout.Layout, legend bool) (width, height float64) {
	width, height = l.Width, l.Height
	if legend {
		width += legendWidth + legendGap
		height = max(height, legendHeight(l))
	}
	return width, height
}

func renderStructure(buf *bytes.Buffer, s styles.Style, st layout.Structure) {
	f := styles.FrameOf(st)
	buf.WriteString(`  <g class="structure">` + "\n")
	s.RenderBackground(buf, f)
	s.RenderBands(buf, f, st.Bands)
	for _, sec := range st.Sectors {
		s.RenderDivider(buf, f, sec)
	}
	for _, sec := range st.Sectors {
		s.RenderQuadrantLabel(buf, f, sec)
	}
	s.RenderRingLabels(buf, f, st.Bands)
	buf.WriteString("  </g>\n")
}

func renderInteraction(buf *bytes.Buffer, popups bool) {
	js := blipInteractionJS
	if popups {
		fmt.Fprintf(buf, "  <style>%s\n  </style>\n", popupCSS)
		js += popupJS
	}
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", js)
}

func buildBlips(l layout.Layout, withPopups bool) []styles.Blip {
	blips := make([]styles.Blip, 0, len(l.Blips))
	for _, b := range l.Blips {
		blip := styles.Blip{
			ID:    b.Entry.Name,
			Label: b.Entry.Label(),
			X:     b.X,
			Y:     b.Y,
			Color: b.Color,
			URL:   b.Entry.Link,
		}
		if withPopups {
			blip.Popup = popupData(l, b)
		}
		blips = append(blips, blip)
	}
	return blips
}

func popupData(l layout.Layout, b layout.Blip) *styles.PopupData {
	p := &styles.PopupData{
		Description: PlainText(b.Entry.Description),
		Tags:        b.Entry.Tags,
	}
	if b.Quadrant < len(l.Sectors) {
		p.Quadrant = l.Sectors[b.Quadrant].Name
	}
	if b.Ring < len(l.Bands) {
		p.Ring = l.Bands[b.Ring].Name
	}
	if sym := b.Entry.Moved.Symbol(); sym != "" {
		p.Movement = sym + " " + b.Entry.Moved.String()
	}
	return p
}
