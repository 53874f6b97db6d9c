// Package sink provides output format renderers for radar layouts.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output format:
//
//   - SVG: the radar with hover and select notifications
//   - HTML: a standalone page around the SVG with legend and details dialog
//   - PNG: raster image, drawn natively or via rsvg-convert
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: the computed geometry for custom front ends
//
// # SVG Output
//
// [RenderSVG] draws, in order, the background, ring bands, dividers,
// quadrant and ring labels, and one marker per placed entry:
//
//	svg := sink.RenderSVG(l,
//	    sink.WithStyle(styles.Outline{}),
//	    sink.WithPopups(),
//	    sink.WithLegend(),
//	)
//
// Hovering an entry dispatches a "radar:hover" CustomEvent on document with
// detail {name}; leaving it dispatches detail {name: null}. Clicking
// dispatches "radar:select". The SVG never navigates on its own; an entry's
// link is exposed as its data-link attribute. Pages embedding the SVG own
// the hover and selection state.
//
// # Raster and Print
//
// [RenderPNG] draws natively with gg unless [WithRSVG] is given.
// [RenderPDF] always converts the SVG through rsvg-convert, which must be
// installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
package sink
