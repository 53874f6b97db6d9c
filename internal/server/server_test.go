package server

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techradar/pkg/cache"
	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/pipeline"
	"github.com/matzehuels/techradar/pkg/store"
)

const platformJSON = `{
  "title": "Platform Radar",
  "quadrants": [{"name": "Tools"}, {"name": "Languages"}, {"name": "Platforms"}, {"name": "Techniques"}],
  "rings": [{"name": "Adopt"}, {"name": "Trial"}, {"name": "Assess"}, {"name": "Hold"}],
  "entries": [
    {"name": "Rust", "quadrant": "Languages", "ring": "Adopt", "description": "Memory **safe**."},
    {"name": "Bazel", "quadrant": "Tools", "ring": "Trial", "moved": 2}
  ]
}`

const dataYAML = `
quadrants: [{name: Tools}, {name: Languages}, {name: Platforms}, {name: Techniques}]
rings: [{name: Adopt}, {name: Hold}]
entries:
  - {name: Spark, quadrant: Platforms, ring: Hold}
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(Config{
		Store:    st,
		Runner:   pipeline.NewRunner(fc, nil, logger),
		Logger:   logger,
		Defaults: pipeline.Options{Popups: true},
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func seed(t *testing.T, ts *httptest.Server) {
	t.Helper()
	if resp := do(t, http.MethodPut, ts.URL+"/api/v1/datasets/platform", platformJSON); resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT platform status = %d: %s", resp.StatusCode, readBody(t, resp))
	}
	if resp := do(t, http.MethodPut, ts.URL+"/api/v1/datasets/data?format=yaml", dataYAML); resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT data status = %d: %s", resp.StatusCode, readBody(t, resp))
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp := do(t, http.MethodGet, ts.URL+"/healthz", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Error("missing request id header")
	}
	if body := readBody(t, resp); !strings.Contains(body, `"status": "ok"`) {
		t.Errorf("body = %s", body)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/datasets/missing", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(requestIDHeader); got != "abc-123" {
		t.Errorf("request id header = %q", got)
	}
	if body := decodeError(t, resp); body.RequestID != "abc-123" {
		t.Errorf("request id in body = %q", body.RequestID)
	}
}

func TestDatasetCRUD(t *testing.T) {
	ts := newTestServer(t)
	seed(t, ts)

	resp := do(t, http.MethodGet, ts.URL+"/api/v1/datasets", "")
	var list struct {
		Datasets []store.Summary `json:"datasets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list.Datasets) != 2 || list.Datasets[0].Name != "data" || list.Datasets[1].Entries != 2 {
		t.Errorf("list = %+v", list.Datasets)
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/datasets/platform", "")
	var ds store.Dataset
	if err := json.NewDecoder(resp.Body).Decode(&ds); err != nil {
		t.Fatal(err)
	}
	if ds.Config.Title != "Platform Radar" || len(ds.Config.Entries) != 2 {
		t.Errorf("dataset = %+v", ds)
	}

	if resp := do(t, http.MethodDelete, ts.URL+"/api/v1/datasets/data", ""); resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d", resp.StatusCode)
	}
	resp = do(t, http.MethodGet, ts.URL+"/api/v1/datasets/data", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET deleted status = %d", resp.StatusCode)
	}
	if body := decodeError(t, resp); body.Error.Code != errors.ErrCodeDatasetNotFound {
		t.Errorf("code = %s", body.Error.Code)
	}
}

func TestPutErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name string
		url  string
		body string
		code errors.Code
	}{
		{"bad name", "/api/v1/datasets/a..b", platformJSON, errors.ErrCodeInvalidDataset},
		{"bad json", "/api/v1/datasets/x", "{", errors.ErrCodeInvalidFormat},
		{"bad format param", "/api/v1/datasets/x?format=csv", platformJSON, errors.ErrCodeInvalidFormat},
		{"duplicate entries", "/api/v1/datasets/x", `{"quadrants":[],"rings":[],"entries":[{"name":"A","quadrant":"Q"},{"name":"A","quadrant":"Q"}]}`, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPut, ts.URL+tt.url, tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if body := decodeError(t, resp); body.Error.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", body.Error.Code, tt.code, body.Error.Message)
			}
		})
	}
}

func TestRadarArtifacts(t *testing.T) {
	ts := newTestServer(t)
	seed(t, ts)

	resp := do(t, http.MethodGet, ts.URL+"/api/v1/datasets/platform/radar.svg", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readBody(t, resp))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	if resp.Header.Get("X-Cache") != "MISS" {
		t.Errorf("first request X-Cache = %q", resp.Header.Get("X-Cache"))
	}
	if body := readBody(t, resp); !strings.Contains(body, `data-entry="Rust"`) {
		t.Error("svg missing Rust")
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/datasets/platform/radar.svg", "")
	if resp.Header.Get("X-Cache") != "HIT" {
		t.Errorf("second request X-Cache = %q", resp.Header.Get("X-Cache"))
	}

	resp = do(t, http.MethodGet, ts.URL+"/api/v1/datasets/platform/radar.html", "")
	body := readBody(t, resp)
	for _, want := range []string{`<option value="data">`, `<option value="platform" selected>`, "Platform Radar"} {
		if !strings.Contains(body, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestRadarJSONOptions(t *testing.T) {
	ts := newTestServer(t)
	seed(t, ts)

	radius := func(query string) float64 {
		t.Helper()
		resp := do(t, http.MethodGet, ts.URL+"/api/v1/datasets/platform/radar.json"+query, "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d: %s", resp.StatusCode, readBody(t, resp))
		}
		var out struct {
			Entries []struct {
				Name   string  `json:"name"`
				Radius float64 `json:"radius"`
			} `json:"entries"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		for _, e := range out.Entries {
			if e.Name == "Rust" {
				return e.Radius
			}
		}
		t.Fatal("Rust not in output")
		return 0
	}

	tests := []struct {
		query string
		want  float64
	}{
		{"", 80.36042209909309},
		{"?radial=equal&placement=simple", 49.572105835441526},
	}
	for _, tt := range tests {
		if got := radius(tt.query); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("radius%s = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestRadarErrors(t *testing.T) {
	ts := newTestServer(t)
	seed(t, ts)

	tests := []struct {
		path   string
		status int
		code   errors.Code
	}{
		{"/api/v1/datasets/platform/radar.gif", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"/api/v1/datasets/platform/radar.svg?width=abc", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/api/v1/datasets/platform/radar.svg?width=-1", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/api/v1/datasets/platform/radar.svg?legend=maybe", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/api/v1/datasets/platform/radar.svg?style=neon", http.StatusBadRequest, errors.ErrCodeInvalidStyle},
		{"/api/v1/datasets/platform/radar.svg?radial=spiral", http.StatusBadRequest, errors.ErrCodeInvalidPolicy},
		{"/api/v1/datasets/nope/radar.svg", http.StatusNotFound, errors.ErrCodeDatasetNotFound},
		{"/nowhere", http.StatusNotFound, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := do(t, http.MethodGet, ts.URL+tt.path, "")
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if body := decodeError(t, resp); body.Error.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", body.Error.Code, tt.code, body.Error.Message)
			}
		})
	}
}

func TestLayoutEndpoint(t *testing.T) {
	ts := newTestServer(t)
	seed(t, ts)

	resp := do(t, http.MethodGet, ts.URL+"/api/v1/datasets/platform/layout?width=1000", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readBody(t, resp))
	}
	var l map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		t.Fatal(err)
	}
	if l["width"] != 1000.0 {
		t.Errorf("width = %v", l["width"])
	}
}

func TestIndex(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("empty store status = %d, want 404", resp.StatusCode)
	}

	seed(t, ts)
	resp = do(t, http.MethodGet, ts.URL+"/", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readBody(t, resp))
	}
	if body := readBody(t, resp); !strings.Contains(body, `<option value="data" selected>`) {
		t.Error("index should default to the first dataset")
	}

	resp = do(t, http.MethodGet, ts.URL+"/?dataset=platform", "")
	if body := readBody(t, resp); !strings.Contains(body, `<option value="platform" selected>`) {
		t.Error("?dataset=platform not selected")
	}

	resp = do(t, http.MethodGet, ts.URL+"/?dataset=missing", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing dataset status = %d", resp.StatusCode)
	}
}
