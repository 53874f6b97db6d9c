package cli

import (
	"testing"

	"github.com/matzehuels/techradar/pkg/core/radar"
)

func TestEntryMarkdown(t *testing.T) {
	tests := []struct {
		name  string
		entry radar.Entry
		want  string
	}{
		{
			name:  "minimal",
			entry: radar.Entry{Name: "Bazel", Quadrant: "Tools", Ring: "Hold"},
			want:  "# Bazel\n\n**Tools** · **Hold**\n\n_No description_\n",
		},
		{
			name: "full",
			entry: radar.Entry{
				Name:        "Rust",
				Quadrant:    "Languages",
				Ring:        "Adopt",
				Description: "  Memory safety.  ",
				Link:        "https://www.rust-lang.org",
				Tags:        []string{"systems", "wasm"},
				Moved:       radar.MovedUp,
			},
			want: "# Rust\n\n**Languages** · **Adopt** · " + radar.MovedUp.Symbol() + " " + radar.MovedUp.String() +
				"\n\nMemory safety.\n\n`systems` `wasm`\n\n[More](https://www.rust-lang.org)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entryMarkdown(tt.entry); got != tt.want {
				t.Errorf("entryMarkdown() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}
