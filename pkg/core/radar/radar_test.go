package radar

import (
	"testing"

	"github.com/matzehuels/techradar/pkg/errors"
)

func sampleConfig() Config {
	return Config{
		Quadrants: []Quadrant{{Name: "Tools"}, {Name: "Languages"}, {Name: "Platforms"}, {Name: "Techniques"}},
		Rings:     []Ring{{Name: "Adopt"}, {Name: "Trial"}, {Name: "Assess"}, {Name: "Hold"}},
		Entries: []Entry{
			{Name: "Rust", Quadrant: "Languages", Ring: "Adopt"},
			{Name: "Kubernetes", Quadrant: "Platforms", Ring: "Trial"},
			{Name: "Ghost", Quadrant: "Nowhere", Ring: "Adopt"},
			{Name: "Unringed", Quadrant: "Tools"},
		},
	}
}

func TestIndexLookups(t *testing.T) {
	cfg := sampleConfig()

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"first quadrant", cfg.QuadrantIndex("Tools"), 0},
		{"second quadrant", cfg.QuadrantIndex("Languages"), 1},
		{"unknown quadrant", cfg.QuadrantIndex("Nowhere"), -1},
		{"empty quadrant", cfg.QuadrantIndex(""), -1},
		{"last ring", cfg.RingIndex("Hold"), 3},
		{"unknown ring", cfg.RingIndex("Later"), -1},
		{"empty ring", cfg.RingIndex(""), -1},
		{"case sensitive", cfg.RingIndex("adopt"), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("index = %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestResolvesAndStats(t *testing.T) {
	cfg := sampleConfig()

	if !cfg.Resolves(cfg.Entries[0]) {
		t.Error("Rust should resolve")
	}
	if cfg.Resolves(cfg.Entries[2]) {
		t.Error("entry with unknown quadrant should not resolve")
	}
	if cfg.Resolves(cfg.Entries[3]) {
		t.Error("entry without ring should not resolve")
	}

	s := cfg.Stats()
	if s.Entries != 4 || s.Unresolved != 2 || s.Quadrants != 4 || s.Rings != 4 {
		t.Errorf("Stats() = %+v", s)
	}

	if got := cfg.EntriesIn("Languages", "Adopt"); len(got) != 1 || got[0].Name != "Rust" {
		t.Errorf("EntriesIn(Languages, Adopt) = %v", got)
	}
	if got := cfg.EntriesIn("Nowhere", "Adopt"); len(got) != 0 {
		t.Errorf("EntriesIn(Nowhere, Adopt) = %v, want empty", got)
	}
}

func TestEntryLookup(t *testing.T) {
	cfg := sampleConfig()
	if e, ok := cfg.Entry("Kubernetes"); !ok || e.Ring != "Trial" {
		t.Errorf("Entry(Kubernetes) = %v, %v", e, ok)
	}
	if _, ok := cfg.Entry("Missing"); ok {
		t.Error("Entry(Missing) should not be found")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unresolvable entries are accepted", func(c *Config) {
			c.Entries = append(c.Entries, Entry{Name: "Orphan", Quadrant: "X", Ring: "Y"})
		}, false},
		{"empty config", func(c *Config) { *c = Config{} }, false},
		{"empty quadrant name", func(c *Config) { c.Quadrants[1].Name = " " }, true},
		{"duplicate quadrant", func(c *Config) { c.Quadrants[1].Name = "Tools" }, true},
		{"empty ring name", func(c *Config) { c.Rings[0].Name = "" }, true},
		{"duplicate ring", func(c *Config) { c.Rings[3].Name = "Adopt" }, true},
		{"empty entry name", func(c *Config) { c.Entries[0].Name = "" }, true},
		{"duplicate entry", func(c *Config) { c.Entries[1].Name = "Rust" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := sampleConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}

func TestMovement(t *testing.T) {
	tests := []struct {
		moved Movement
		want  string
	}{
		{MovedDown, "▼"},
		{MovedNone, ""},
		{MovedUp, "▲"},
		{MovedNew, "★"},
		{Movement(7), ""},
	}

	for _, tt := range tests {
		if got := tt.moved.Symbol(); got != tt.want {
			t.Errorf("Movement(%d).Symbol() = %q, want %q", tt.moved, got, tt.want)
		}
	}

	if got := (Entry{Name: "Go", Moved: MovedUp}).Label(); got != "Go ▲" {
		t.Errorf("Label() = %q, want %q", got, "Go ▲")
	}
	if got := (Entry{Name: "Go"}).Label(); got != "Go" {
		t.Errorf("Label() = %q, want %q", got, "Go")
	}
}

func TestRingColor(t *testing.T) {
	tests := []struct {
		name  string
		ring  Ring
		index int
		want  string
	}{
		{"explicit", Ring{Name: "Adopt", Color: "#000"}, 0, "#000"},
		{"semantic adopt", Ring{Name: "Adopt"}, 3, "#2e7d32"},
		{"semantic hold upper", Ring{Name: "HOLD"}, 0, "#c62828"},
		{"semantic assess", Ring{Name: " assess "}, 0, "#f9a825"},
		{"fallback first", Ring{Name: "Core"}, 0, "#2e7d32"},
		{"fallback fourth", Ring{Name: "Edge"}, 3, "#6a1b9a"},
		{"fallback wraps", Ring{Name: "Edge"}, 5, "#1565c0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RingColor(tt.ring, tt.index); got != tt.want {
				t.Errorf("RingColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShortName(t *testing.T) {
	tests := map[string]string{
		"Adopt":             "Adopt",
		"Adopt/Use":         "Adopt",
		"Assess / Evaluate": "Assess",
		"":                  "",
	}
	for in, want := range tests {
		if got := ShortName(in); got != want {
			t.Errorf("ShortName(%q) = %q, want %q", in, got, want)
		}
	}
}
