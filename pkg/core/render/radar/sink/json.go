package sink

import (
	"encoding/json"

	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style  string
	legend bool
}

// WithJSONStyle records the style name in the output.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONLegend includes the per-quadrant legend.
func WithJSONLegend() JSONOption { return func(r *jsonRenderer) { r.legend = true } }

type jsonOutput struct {
	Title     string          `json:"title,omitempty"`
	Width     float64         `json:"width"`
	Height    float64         `json:"height"`
	Center    layout.Point    `json:"center"`
	Radius    float64         `json:"radius"`
	Style     string          `json:"style,omitempty"`
	Options   layout.Options  `json:"options"`
	Rings     []jsonRing      `json:"rings"`
	Quadrants []jsonQuadrant  `json:"quadrants"`
	Entries   []jsonEntry     `json:"entries"`
	Legend    []LegendSection `json:"legend,omitempty"`
}

type jsonRing struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Inner float64 `json:"inner"`
	Outer float64 `json:"outer"`
}

type jsonQuadrant struct {
	Name  string  `json:"name"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type jsonEntry struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Quadrant    string   `json:"quadrant"`
	Ring        string   `json:"ring"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Angle       float64  `json:"angle"`
	Radius      float64  `json:"radius"`
	Color       string   `json:"color"`
	Moved       string   `json:"moved,omitempty"`
	Link        string   `json:"link,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// RenderJSON exports the computed geometry in a flat, front-end friendly form.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Title:     l.Title,
		Width:     l.Width,
		Height:    l.Height,
		Center:    l.Center,
		Radius:    l.Radius,
		Style:     r.style,
		Options:   l.Options,
		Rings:     make([]jsonRing, len(l.Bands)),
		Quadrants: make([]jsonQuadrant, len(l.Sectors)),
		Entries:   make([]jsonEntry, 0, len(l.Blips)),
	}
	for i, b := range l.Bands {
		out.Rings[i] = jsonRing{Name: b.Name, Color: b.Color, Inner: b.Inner, Outer: b.Outer}
	}
	for i, s := range l.Sectors {
		out.Quadrants[i] = jsonQuadrant{Name: s.Name, Start: s.Start, End: s.End}
	}
	for _, b := range l.Blips {
		e := jsonEntry{
			Name:        b.Entry.Name,
			Label:       b.Entry.Label(),
			Quadrant:    l.Sectors[b.Quadrant].Name,
			Ring:        l.Bands[b.Ring].Name,
			X:           b.X,
			Y:           b.Y,
			Angle:       b.Angle,
			Radius:      b.Polar.Radius,
			Color:       b.Color,
			Link:        b.Entry.Link,
			Description: b.Entry.Description,
			Tags:        b.Entry.Tags,
		}
		if b.Entry.Moved.Symbol() != "" {
			e.Moved = b.Entry.Moved.String()
		}
		out.Entries = append(out.Entries, e)
	}
	if r.legend {
		out.Legend = Legend(l)
	}
	return json.MarshalIndent(out, "", "  ")
}
