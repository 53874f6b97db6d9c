package radar

import (
	"strings"

	"github.com/matzehuels/techradar/pkg/errors"
)

// Ring is a concentric band. Rings are ordered innermost first.
type Ring struct {
	Name  string `json:"name" yaml:"name" toml:"name" bson:"name"`
	Color string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty" bson:"color,omitempty"`
}

// Quadrant is an angular sector. Quadrants are ordered by angle starting at 0.
type Quadrant struct {
	Name string `json:"name" yaml:"name" toml:"name" bson:"name"`
}

// Entry is a single technology placed on the radar.
// Name is both the identity used for placement and the display label.
type Entry struct {
	Name        string   `json:"name" yaml:"name" toml:"name" bson:"name"`
	Quadrant    string   `json:"quadrant" yaml:"quadrant" toml:"quadrant" bson:"quadrant"`
	Ring        string   `json:"ring,omitempty" yaml:"ring,omitempty" toml:"ring,omitempty" bson:"ring,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty" bson:"description,omitempty"`
	Link        string   `json:"link,omitempty" yaml:"link,omitempty" toml:"link,omitempty" bson:"link,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty" bson:"tags,omitempty"`
	Moved       Movement `json:"moved,omitempty" yaml:"moved,omitempty" toml:"moved,omitempty" bson:"moved,omitempty"`
}

// Config is a complete radar definition.
type Config struct {
	Title     string     `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty" bson:"title,omitempty"`
	Quadrants []Quadrant `json:"quadrants" yaml:"quadrants" toml:"quadrants" bson:"quadrants"`
	Rings     []Ring     `json:"rings" yaml:"rings" toml:"rings" bson:"rings"`
	Entries   []Entry    `json:"entries" yaml:"entries" toml:"entries" bson:"entries"`
}

// QuadrantIndex returns the position of the named quadrant, or -1.
func (c *Config) QuadrantIndex(name string) int {
	return QuadrantIndex(c.Quadrants, name)
}

// RingIndex returns the position of the named ring, or -1.
func (c *Config) RingIndex(name string) int {
	return RingIndex(c.Rings, name)
}

// Entry looks up an entry by name.
func (c *Config) Entry(name string) (Entry, bool) {
	for _, e := range c.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Resolves reports whether both references of e resolve against c.
func (c *Config) Resolves(e Entry) bool {
	return c.QuadrantIndex(e.Quadrant) >= 0 && c.RingIndex(e.Ring) >= 0
}

// EntriesIn returns the resolvable entries of a quadrant/ring cell in input order.
func (c *Config) EntriesIn(quadrant, ring string) []Entry {
	var out []Entry
	for _, e := range c.Entries {
		if e.Quadrant == quadrant && e.Ring == ring && c.Resolves(e) {
			out = append(out, e)
		}
	}
	return out
}

// QuadrantIndex returns the position of name in quadrants, or -1.
func QuadrantIndex(quadrants []Quadrant, name string) int {
	if name == "" {
		return -1
	}
	for i, q := range quadrants {
		if q.Name == name {
			return i
		}
	}
	return -1
}

// RingIndex returns the position of name in rings, or -1.
// An empty name never resolves.
func RingIndex(rings []Ring, name string) int {
	if name == "" {
		return -1
	}
	for i, r := range rings {
		if r.Name == name {
			return i
		}
	}
	return -1
}

// Validate checks that quadrant, ring and entry names are non-empty and unique.
// Entries with unknown quadrant or ring references are accepted.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Quadrants))
	for i, q := range c.Quadrants {
		if strings.TrimSpace(q.Name) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "quadrant %d has no name", i)
		}
		if seen[q.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate quadrant %q", q.Name)
		}
		seen[q.Name] = true
	}

	seen = make(map[string]bool, len(c.Rings))
	for i, r := range c.Rings {
		if strings.TrimSpace(r.Name) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "ring %d has no name", i)
		}
		if seen[r.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate ring %q", r.Name)
		}
		seen[r.Name] = true
	}

	seen = make(map[string]bool, len(c.Entries))
	for i, e := range c.Entries {
		if strings.TrimSpace(e.Name) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "entry %d has no name", i)
		}
		if seen[e.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate entry %q", e.Name)
		}
		seen[e.Name] = true
	}
	return nil
}

// Stats summarizes a config.
type Stats struct {
	Quadrants  int
	Rings      int
	Entries    int
	Unresolved int
}

// Stats counts the elements of c. Unresolved counts entries that layout will skip.
func (c *Config) Stats() Stats {
	s := Stats{Quadrants: len(c.Quadrants), Rings: len(c.Rings), Entries: len(c.Entries)}
	for _, e := range c.Entries {
		if !c.Resolves(e) {
			s.Unresolved++
		}
	}
	return s
}
