package sink

import (
	"bytes"
	"context"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/techradar/pkg/core/render"
	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
	"github.com/matzehuels/techradar/pkg/core/render/radar/styles"
	"github.com/matzehuels/techradar/pkg/errors"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
	rsvg    bool
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
// They only apply together with [WithRSVG].
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithRSVG rasterizes the SVG output with rsvg-convert instead of drawing natively.
func WithRSVG() PNGOption {
	return func(r *pngRenderer) { r.rsvg = true }
}

// RenderPNG rasterizes the layout. By default the radar is drawn natively
// in the filled look; [WithRSVG] converts the SVG output instead.
func RenderPNG(ctx context.Context, l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive")
	}
	if r.rsvg {
		svg := RenderSVG(l, append([]SVGOption{WithStatic()}, r.svgOpts...)...)
		return render.ToPNG(ctx, svg, r.scale)
	}
	return drawPNG(l, r.scale)
}

func drawPNG(l layout.Layout, scale float64) ([]byte, error) {
	w := int(math.Ceil(l.Width * scale))
	h := int(math.Ceil(l.Height * scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas too small: %.0fx%.0f", l.Width, l.Height)
	}

	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse font")
	}
	face := func(size float64) font.Face {
		f, err := opentype.NewFace(fnt, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return nil
		}
		return f
	}

	dc := gg.NewContext(w, h)
	dc.Scale(scale, scale)
	dc.SetColor(color.White)
	dc.Clear()

	cx, cy, radius := l.Center.X, l.Center.Y, l.Radius

	dc.SetColor(hexColor("#f0f0f0", 1))
	dc.DrawCircle(cx, cy, radius)
	dc.Fill()

	for i := len(l.Bands) - 1; i >= 0; i-- {
		b := l.Bands[i]
		dc.DrawCircle(cx, cy, b.Outer)
		dc.SetColor(hexColor(b.Color, 0.28))
		dc.FillPreserve()
		dc.SetColor(color.White)
		dc.SetLineWidth(2)
		dc.Stroke()
		if b.Inner > 0 {
			dc.DrawCircle(cx, cy, b.Inner)
			dc.FillPreserve()
			dc.Stroke()
		}
	}

	dc.SetColor(color.White)
	dc.SetLineWidth(2)
	for _, s := range l.Sectors {
		dc.DrawLine(cx, cy, cx+radius*math.Cos(s.Start), cy+radius*math.Sin(s.Start))
		dc.Stroke()
	}

	if f := face(16); f != nil {
		dc.SetFontFace(f)
		dc.SetColor(hexColor("#999999", 1))
		for _, s := range l.Sectors {
			mid := s.Mid()
			r := radius + 14
			x, y := cx+r*math.Cos(mid), cy+r*math.Sin(mid)
			dc.Push()
			dc.RotateAbout(mid+math.Pi/2, x, y)
			dc.DrawStringAnchored(s.Name, x, y, 0.5, 0)
			dc.Pop()
		}
	}

	if f := face(12); f != nil {
		dc.SetFontFace(f)
		dc.SetColor(hexColor("#666666", 1))
		for _, b := range l.Bands {
			label := styles.RingLabel(b.Name)
			r := b.Mid()
			for k := 0; k < 4; k++ {
				angle := float64(k) * math.Pi / 2
				x, y := cx+r*math.Cos(angle), cy+r*math.Sin(angle)
				dc.Push()
				if k%2 == 1 {
					dc.RotateAbout(math.Pi/2, x, y)
				}
				dc.DrawStringAnchored(label, x, y, 0.5, 0.5)
				dc.Pop()
			}
		}
	}

	labelFace := face(11)
	for _, b := range l.Blips {
		dc.DrawCircle(b.X, b.Y, 6)
		dc.SetColor(hexColor(b.Color, 1))
		dc.FillPreserve()
		dc.SetColor(hexColor("#333333", 1))
		dc.SetLineWidth(1)
		dc.Stroke()
		if labelFace != nil {
			dc.SetFontFace(labelFace)
			dc.DrawString(b.Entry.Label(), b.X+10, b.Y+4)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// hexColor parses a CSS hex color with the given opacity. Unparseable
// colors fall back to grey.
func hexColor(hex string, alpha float64) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c = colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	a := uint8(math.Round(alpha * 255))
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
