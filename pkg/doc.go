// Package pkg provides the libraries behind techradar, a deterministic
// technology radar layout engine.
//
// # Overview
//
// A radar is a list of entries, each assigned to a quadrant (an angular
// sector) and a ring (a concentric band). Techradar places every entry at a
// position derived only from its key, its quadrant and its ring, so the same
// dataset always produces the same picture and adding an entry never moves
// the others.
//
// # Architecture
//
// The typical data flow:
//
//	YAML / TOML / JSON / Zalando JSON / XLSX
//	         ↓
//	    [io] package (import into radar.Config)
//	         ↓
//	    [core/render/radar/layout] package (bands, sectors, placement)
//	         ↓
//	    [core/render/radar/sink] package (SVG, HTML, PNG, PDF, JSON)
//
// [pipeline] runs these steps with caching and is shared by the CLI and the
// HTTP service. [store] keeps named datasets in a directory, SQLite or
// MongoDB. [cache] holds layouts and artifacts in files or Redis.
//
// # Quick Start
//
//	res, _ := io.ImportFile("radar.yaml", "")
//	l := layout.Build(res.Config, 800, 800)
//	svg := sink.RenderSVG(l, sink.WithLegend(), sink.WithPopups())
//
// # Main Packages
//
// [core/radar] - Radar definitions: quadrants, rings, entries, movement.
//
// [core/render/radar/layout] - Ring bands (equal or widened), quadrant
// sectors, and hash-based placement inside a sector/band cell.
//
// [core/render/radar/styles] - Visual styles (filled, outline) and text helpers.
//
// [core/render/radar/sink] - Output formats. HTML embeds the SVG with
// hover popups and a legend that highlights blips.
//
// [core/render] - SVG to PDF/PNG conversion with rsvg-convert.
//
// [httputil] - Cached, retrying downloads of remote datasets.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [errors] - Error codes shared by the CLI and the HTTP service.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test -run Example ./pkg/... # Examples only
//
// [io]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/pipeline
// [store]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/cache
// [core/radar]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/core/radar
// [core/render]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/core/render
// [core/render/radar/layout]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/core/render/radar/layout
// [core/render/radar/styles]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/core/render/radar/styles
// [core/render/radar/sink]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/core/render/radar/sink
// [httputil]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/techradar/pkg/errors
package pkg
