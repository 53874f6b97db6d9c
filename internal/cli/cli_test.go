package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
	"github.com/matzehuels/techradar/pkg/errors"
)

const testRadar = `title: Platform Radar
quadrants:
  - name: Languages
  - name: Tools
  - name: Platforms
  - name: Techniques
rings:
  - name: Adopt
  - name: Trial
  - name: Assess
  - name: Hold
entries:
  - name: Rust
    quadrant: Languages
    ring: Adopt
    moved: 1
    description: Memory safety *without* a garbage collector.
    tags: [systems]
  - name: Bazel
    quadrant: Tools
    ring: Hold
  - name: Ghost
    quadrant: Nowhere
    ring: Adopt
`

// testEnv points the XDG directories at temporary ones so commands never
// touch the user's settings, cache or store.
type testEnv struct {
	config string
	cache  string
	data   string
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()
	env := testEnv{config: t.TempDir(), cache: t.TempDir(), data: t.TempDir()}
	t.Setenv("XDG_CONFIG_HOME", env.config)
	t.Setenv("XDG_CACHE_HOME", env.cache)
	t.Setenv("XDG_DATA_HOME", env.data)
	return env
}

func writeRadar(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "radar.yaml")
	if err := os.WriteFile(path, []byte(testRadar), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBaseName(t *testing.T) {
	tests := map[string]string{
		"radar.yaml":             "radar",
		"dir/q3.radar.json":      "q3.radar",
		"/abs/path/platform.xls": "platform",
		"noext":                  "noext",
	}
	for in, want := range tests {
		if got := baseName(in); got != want {
			t.Errorf("baseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSourceResolve(t *testing.T) {
	tests := []struct {
		name     string
		src      source
		args     []string
		wantPath string
		wantCode errors.Code
	}{
		{name: "file", args: []string{"radar.yaml"}, wantPath: "radar.yaml"},
		{name: "dataset", src: source{dataset: "platform"}},
		{name: "neither", wantCode: errors.ErrCodeInvalidInput},
		{name: "both", src: source{dataset: "platform"}, args: []string{"radar.yaml"}, wantCode: errors.ErrCodeInvalidInput},
		{name: "bad dataset name", src: source{dataset: "../etc"}, wantCode: errors.ErrCodeInvalidDataset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := tt.src
			err := src.resolve(tt.args)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("resolve() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve() error: %v", err)
			}
			if src.path != tt.wantPath {
				t.Errorf("path = %q, want %q", src.path, tt.wantPath)
			}
		})
	}
}

func TestSourceNames(t *testing.T) {
	file := source{path: "data/radar.yaml"}
	if file.name() != "radar" || file.arg() != "data/radar.yaml" || file.remote() {
		t.Errorf("file source: name=%q arg=%q remote=%v", file.name(), file.arg(), file.remote())
	}
	stored := source{dataset: "platform"}
	if stored.name() != "platform" || stored.arg() != "--dataset platform" || stored.remote() {
		t.Errorf("dataset source: name=%q arg=%q remote=%v", stored.name(), stored.arg(), stored.remote())
	}
	if !(source{path: "https://example.com/radar.json"}).remote() {
		t.Error("https source should be remote")
	}
}

func TestRenderCommand(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()
	path := writeRadar(t, dir)

	if _, err := runCLI(t, "render", path, "-f", "svg,html"); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "radar.svg"))
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("Rust")) {
		t.Error("svg should contain the radar and its entries")
	}
	if _, err := os.Stat(filepath.Join(dir, "radar.html")); err != nil {
		t.Errorf("html not written: %v", err)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	setupEnv(t)
	path := writeRadar(t, t.TempDir())

	_, err := runCLI(t, "render", path, "-f", "gif")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("render -f gif error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestRenderWatchNeedsFile(t *testing.T) {
	setupEnv(t)
	_, err := runCLI(t, "render", "--dataset", "platform", "--watch")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("render --watch --dataset error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func layoutOf(t *testing.T, args ...string) layout.Layout {
	t.Helper()
	out, err := runCLI(t, append([]string{"layout", "-o", "-", "--no-cache"}, args...)...)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := layout.Unmarshal([]byte(out))
	if err != nil {
		t.Fatalf("unmarshal layout: %v", err)
	}
	return l
}

func TestLayoutCommand(t *testing.T) {
	setupEnv(t)
	path := writeRadar(t, t.TempDir())

	l := layoutOf(t, path)
	if l.Title != "Platform Radar" {
		t.Errorf("title = %q", l.Title)
	}
	if len(l.Blips) != 2 {
		t.Errorf("placed %d entries, want 2 (Ghost is unresolved)", len(l.Blips))
	}
	if l.Options.Radial != layout.PolicyWidened {
		t.Errorf("radial = %q, want default %q", l.Options.Radial, layout.PolicyWidened)
	}
}

func TestLayoutSettingsPrecedence(t *testing.T) {
	env := setupEnv(t)
	path := writeRadar(t, t.TempDir())

	cfgDir := filepath.Join(env.config, appName)
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgFile := "layout:\n  radial: equal\n  width: 600\n  height: 600\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(cfgFile), 0o644); err != nil {
		t.Fatal(err)
	}

	l := layoutOf(t, path)
	if l.Options.Radial != layout.PolicyEqual || l.Width != 600 {
		t.Errorf("config file: radial=%q width=%v, want equal 600", l.Options.Radial, l.Width)
	}

	t.Setenv("TECHRADAR_LAYOUT_WIDTH", "700")
	l = layoutOf(t, path)
	if l.Width != 700 {
		t.Errorf("env: width = %v, want 700", l.Width)
	}

	l = layoutOf(t, path, "--width", "900", "--radial", "widened")
	if l.Width != 900 || l.Options.Radial != layout.PolicyWidened {
		t.Errorf("flags: radial=%q width=%v, want widened 900", l.Options.Radial, l.Width)
	}
}

func TestLayoutWritesFile(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()
	path := writeRadar(t, dir)

	if _, err := runCLI(t, "layout", path); err != nil {
		t.Fatalf("layout: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "radar.layout.json")); err != nil {
		t.Errorf("layout file not written: %v", err)
	}
}

func TestImportCommand(t *testing.T) {
	setupEnv(t)
	path := writeRadar(t, t.TempDir())

	out, err := runCLI(t, "import", path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	var cfg radar.Config
	if err := json.Unmarshal([]byte(out), &cfg); err != nil {
		t.Fatalf("import output is not JSON: %v\n%s", err, out)
	}
	if len(cfg.Entries) != 3 || cfg.Entries[0].Name != "Rust" {
		t.Errorf("entries = %+v", cfg.Entries)
	}
}

func TestImportOutputAndSaveExclusive(t *testing.T) {
	setupEnv(t)
	path := writeRadar(t, t.TempDir())

	if _, err := runCLI(t, "import", path, "-o", "x.json", "--save", "platform"); err == nil {
		t.Error("import with -o and --save should fail")
	}
}

func TestShowCommand(t *testing.T) {
	setupEnv(t)
	path := writeRadar(t, t.TempDir())

	out, err := runCLI(t, "show", path, "Rust")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Rust", "Languages", "Adopt", "garbage collector", "systems"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q:\n%s", want, out)
		}
	}

	out, err = runCLI(t, "show", path, "Bazel")
	if err != nil {
		t.Fatalf("show Bazel: %v", err)
	}
	if !strings.Contains(out, "No description") {
		t.Errorf("entry without description should show a placeholder:\n%s", out)
	}

	_, err = runCLI(t, "show", path, "Cobol")
	if !errors.Is(err, errors.ErrCodeEntryNotFound) {
		t.Errorf("show unknown entry error = %v, want %s", err, errors.ErrCodeEntryNotFound)
	}
}

func TestLegendCommand(t *testing.T) {
	setupEnv(t)
	path := writeRadar(t, t.TempDir())

	out, err := runCLI(t, "legend", path)
	if err != nil {
		t.Fatalf("legend: %v", err)
	}
	for _, want := range []string{"Platform Radar", "Adopt", "Hold", "1. Languages", "Rust", "Bazel"} {
		if !strings.Contains(out, want) {
			t.Errorf("legend output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Ghost") {
		t.Error("unresolved entries should not be listed")
	}
}

func TestLegendJSON(t *testing.T) {
	setupEnv(t)
	path := writeRadar(t, t.TempDir())

	out, err := runCLI(t, "legend", path, "--json")
	if err != nil {
		t.Fatalf("legend --json: %v", err)
	}
	var sections []struct {
		Number   int    `json:"number"`
		Quadrant string `json:"quadrant"`
	}
	if err := json.Unmarshal([]byte(out), &sections); err != nil {
		t.Fatalf("legend --json output: %v\n%s", err, out)
	}
	if len(sections) != 4 || sections[0].Quadrant != "Languages" {
		t.Errorf("sections = %+v", sections)
	}
}

func TestDatasetLifecycle(t *testing.T) {
	setupEnv(t)
	path := writeRadar(t, t.TempDir())
	storeDir := filepath.Join(t.TempDir(), "datasets")

	if _, err := runCLI(t, "dataset", "put", "platform", path, "--store", storeDir); err != nil {
		t.Fatalf("dataset put: %v", err)
	}

	out, err := runCLI(t, "dataset", "list", "-q", "--store", storeDir)
	if err != nil {
		t.Fatalf("dataset list: %v", err)
	}
	if strings.TrimSpace(out) != "platform" {
		t.Errorf("dataset list = %q, want platform", out)
	}

	out, err = runCLI(t, "dataset", "get", "platform", "--store", storeDir)
	if err != nil {
		t.Fatalf("dataset get: %v", err)
	}
	if !strings.Contains(out, `"Rust"`) {
		t.Errorf("dataset get output missing Rust:\n%s", out)
	}

	if _, err := runCLI(t, "dataset", "delete", "platform", "--store", storeDir); err != nil {
		t.Fatalf("dataset delete: %v", err)
	}
	_, err = runCLI(t, "dataset", "get", "platform", "--store", storeDir)
	if !errors.Is(err, errors.ErrCodeDatasetNotFound) {
		t.Errorf("get after delete error = %v, want %s", err, errors.ErrCodeDatasetNotFound)
	}
}

func TestRenderStoredDataset(t *testing.T) {
	env := setupEnv(t)
	path := writeRadar(t, t.TempDir())

	if _, err := runCLI(t, "import", path, "--save", "platform"); err != nil {
		t.Fatalf("import --save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.data, appName, "datasets")); err != nil {
		t.Fatalf("default store not created: %v", err)
	}

	out := filepath.Join(t.TempDir(), "platform.svg")
	if _, err := runCLI(t, "render", "--dataset", "platform", "-o", out); err != nil {
		t.Fatalf("render --dataset: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("render output missing: %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "version: ") || !strings.Contains(out, "commit: ") {
		t.Errorf("version output = %q", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := runCLI(t, "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("completion %s does not mention %s", shell, appName)
		}
	}
}

func TestExampleRadar(t *testing.T) {
	setupEnv(t)
	l := layoutOf(t, filepath.Join("..", "..", "examples", "platform.yaml"))
	if len(l.Blips) != 8 {
		t.Errorf("placed %d entries, want 8", len(l.Blips))
	}
}
