package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/techradar/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,html,png", []string{"svg", "html", "png"}},
		{"spaces and case", " SVG , pdf ", []string{"svg", "pdf"}},
		{"empty items dropped", "svg,,json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, parseFormats(tt.input)); diff != "" {
				t.Errorf("parseFormats(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		wantErr bool
	}{
		{"valid svg", []string{"svg"}, false},
		{"valid html", []string{"html"}, false},
		{"valid all", []string{"svg", "html", "png", "pdf", "json"}, false},
		{"invalid format", []string{"invalid"}, true},
		{"mixed valid invalid", []string{"svg", "dot"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pipeline.ValidateFormats(tt.formats)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormats(%v) error = %v, wantErr %v", tt.formats, err, tt.wantErr)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	file := source{path: filepath.Join("data", "radar.yaml")}
	stored := source{dataset: "platform"}
	remote := source{path: "https://example.com/radars/q3.xlsx"}

	tests := []struct {
		name   string
		src    source
		output string
		format string
		multi  bool
		want   string
	}{
		{"next to input", file, "", "svg", false, filepath.Join("data", "radar.svg")},
		{"layout json suffix", file, "", "json", false, filepath.Join("data", "radar.layout.json")},
		{"dataset name", stored, "", "html", false, "platform.html"},
		{"remote uses base name", remote, "", "png", false, "q3.png"},
		{"explicit output", file, "out/chart.svg", "svg", false, "out/chart.svg"},
		{"explicit output kept for single format", file, "chart.png", "png", false, "chart.png"},
		{"multi swaps extension", file, "out/chart.svg", "pdf", true, "out/chart.pdf"},
		{"multi json", stored, "chart.svg", "json", true, "chart.layout.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPath(tt.src, tt.output, tt.format, tt.multi)
			if got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	src := source{path: filepath.Join(dir, "radar.yaml")}
	artifacts := map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte("{}"),
	}

	paths, err := writeArtifacts(artifacts, []string{"svg", "png", "json"}, src, "")
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}

	want := []string{filepath.Join(dir, "radar.svg"), filepath.Join(dir, "radar.layout.json")}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	data, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("svg content = %q", data)
	}
}

func TestWriteArtifactsCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "deeper", "radar.svg")

	paths, err := writeArtifacts(map[string][]byte{"svg": []byte("<svg/>")}, []string{"svg"}, source{dataset: "x"}, out)
	if err != nil {
		t.Fatalf("writeArtifacts() error: %v", err)
	}
	if len(paths) != 1 || paths[0] != out {
		t.Fatalf("paths = %v, want [%s]", paths, out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output not written: %v", err)
	}
}
