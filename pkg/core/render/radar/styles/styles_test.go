package styles

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
)

var testFrame = Frame{CX: 400, CY: 400, Radius: 360}

var testBands = []layout.Band{
	{Index: 0, Name: "Adopt", Color: "#2e7d32", Inner: 0, Outer: 144},
	{Index: 1, Name: "Trial/Try", Color: "#1565c0", Inner: 144, Outer: 216},
}

func TestFilledRenderBands(t *testing.T) {
	var buf bytes.Buffer
	Filled{}.RenderBands(&buf, testFrame, testBands)
	out := buf.String()

	outer := strings.Index(out, `r="216.00" fill="#1565c0"`)
	inner := strings.Index(out, `r="144.00" fill="#2e7d32"`)
	if outer < 0 || inner < 0 {
		t.Fatalf("RenderBands() missing band circles:\n%s", out)
	}
	if outer > inner {
		t.Error("bands should be drawn outermost first")
	}
	if !strings.Contains(out, `class="ring-cutout" cx="400.00" cy="400.00" r="144.00" fill="white"`) {
		t.Errorf("RenderBands() missing inner cutout:\n%s", out)
	}
	if !strings.Contains(out, `fill-opacity="0.28"`) {
		t.Error("RenderBands() missing band opacity")
	}
	if strings.Count(out, "ring-cutout") != 1 {
		t.Error("innermost band should have no cutout")
	}
}

func TestFilledRenderRingLabels(t *testing.T) {
	var buf bytes.Buffer
	Filled{}.RenderRingLabels(&buf, testFrame, testBands)
	out := buf.String()

	if got := strings.Count(out, ">adopt<"); got != 4 {
		t.Errorf("adopt label count = %d, want 4", got)
	}
	if got := strings.Count(out, ">trial<"); got != 4 {
		t.Errorf("trial label count = %d, want 4", got)
	}
	// Two vertical-axis positions per ring are rotated.
	if got := strings.Count(out, "rotate(90"); got != 4 {
		t.Errorf("rotated labels = %d, want 4", got)
	}
	// Mid radius of Adopt (72) on the positive x axis, shifted 3 down.
	if !strings.Contains(out, `x="472.00" y="403.00"`) {
		t.Errorf("missing adopt label at mid radius:\n%s", out)
	}
}

func TestFilledRenderQuadrantLabel(t *testing.T) {
	var buf bytes.Buffer
	s := layout.Sector{Index: 0, Name: "Tools & Co", Start: 0, End: math.Pi / 2}
	Filled{}.RenderQuadrantLabel(&buf, testFrame, s)
	out := buf.String()

	for _, want := range []string{`rotate(135.00`, `Tools &amp; Co`, `font-size="16"`, `fill="#999"`} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderQuadrantLabel() missing %q\nGot: %s", want, out)
		}
	}
}

func TestFilledRenderDivider(t *testing.T) {
	var buf bytes.Buffer
	Filled{}.RenderDivider(&buf, testFrame, layout.Sector{Start: 0, End: math.Pi / 2})
	want := `x1="400.00" y1="400.00" x2="760.00" y2="400.00" stroke="white"`
	if !strings.Contains(buf.String(), want) {
		t.Errorf("RenderDivider() = %s, want %s", buf.String(), want)
	}
}

func TestOutlineRendering(t *testing.T) {
	o := Outline{}

	t.Run("bands", func(t *testing.T) {
		var buf bytes.Buffer
		o.RenderBands(&buf, testFrame, testBands)
		if got := strings.Count(buf.String(), `fill="none" stroke="#ddd"`); got != 2 {
			t.Errorf("ring circles = %d, want 2", got)
		}
	})

	t.Run("ring labels at top of ring", func(t *testing.T) {
		var buf bytes.Buffer
		o.RenderRingLabels(&buf, testFrame, testBands)
		if !strings.Contains(buf.String(), `x="400.00" y="272.00"`) {
			t.Errorf("Adopt label not at cy-r+16:\n%s", buf.String())
		}
	})

	t.Run("quadrant anchors", func(t *testing.T) {
		step := math.Pi / 2
		tests := []struct {
			index  int
			anchor string
		}{
			{0, "start"},
			{1, "end"},
			{2, "end"},
			{3, "start"},
		}
		for _, tt := range tests {
			var buf bytes.Buffer
			s := layout.Sector{Index: tt.index, Name: "Q", Start: float64(tt.index) * step, End: float64(tt.index+1) * step}
			o.RenderQuadrantLabel(&buf, testFrame, s)
			if !strings.Contains(buf.String(), `text-anchor="`+tt.anchor+`"`) {
				t.Errorf("sector %d: want anchor %s, got %s", tt.index, tt.anchor, buf.String())
			}
			if !strings.Contains(buf.String(), ">"+string(rune('1'+tt.index))+". Q<") {
				t.Errorf("sector %d: missing numbered label in %s", tt.index, buf.String())
			}
		}
	})

	t.Run("no background", func(t *testing.T) {
		var buf bytes.Buffer
		o.RenderBackground(&buf, testFrame)
		if buf.Len() != 0 {
			t.Errorf("RenderBackground() wrote %d bytes, want 0", buf.Len())
		}
	})
}

func TestRenderBlip(t *testing.T) {
	tests := []struct {
		name     string
		blip     Blip
		contains []string
	}{
		{
			name: "basic blip",
			blip: Blip{ID: "Rust", Label: "Rust ▲", X: 100, Y: 200, Color: "#2e7d32"},
			contains: []string{
				`id="blip-Rust"`,
				`data-entry="Rust"`,
				`cx="100.00" cy="200.00" r="6"`,
				`fill="#2e7d32" stroke="#333"`,
				`x="110.00" y="204.00"`,
				`font-size="11"`,
				`>Rust ▲<`,
			},
		},
		{
			name: "special chars",
			blip: Blip{ID: "C<>", Label: "C<>", Color: "#000"},
			contains: []string{
				`id="blip-C&lt;&gt;"`,
				`>C&lt;&gt;<`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Filled{}.RenderBlip(&buf, tt.blip)
			output := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(output, want) {
					t.Errorf("RenderBlip() output missing %q\nGot: %s", want, output)
				}
			}
		})
	}
}

func TestRenderPopup(t *testing.T) {
	t.Run("without data", func(t *testing.T) {
		var buf bytes.Buffer
		Filled{}.RenderPopup(&buf, Blip{ID: "Rust"})
		if buf.Len() != 0 {
			t.Errorf("RenderPopup() wrote %d bytes for blip without popup", buf.Len())
		}
	})

	t.Run("with data", func(t *testing.T) {
		var buf bytes.Buffer
		Outline{}.RenderPopup(&buf, Blip{ID: "Rust", X: 10, Y: 20, Popup: &PopupData{
			Quadrant: "Languages", Ring: "Adopt", Movement: "new",
			Tags: []string{"systems", "wasm"},
		}})
		out := buf.String()
		for _, want := range []string{
			`class="popup" data-for="Rust" visibility="hidden"`,
			`>Languages · Adopt<`,
			`>new<`,
			`>No description<`,
			`>#systems #wasm<`,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("RenderPopup() output missing %q\nGot: %s", want, out)
			}
		}
	})
}
