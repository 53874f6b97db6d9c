// Package pipeline provides the import → layout → render pipeline used by the
// CLI and the HTTP service.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read a dataset file and normalize it to [radar.Config]
//  2. Layout: Place every resolvable entry ([layout.Build])
//  3. Render: Produce SVG, HTML, PNG, PDF or JSON output
//
// Layouts and artifacts are cached by content hash. Cache failures are
// logged and never fail a run.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "radar.yaml",
//	    Formats: []string{"svg", "html"},
//	})
//	svg := result.Artifacts["svg"]
//
// Datasets that are already in memory (from a store) skip the parse stage:
//
//	result, err := runner.ExecuteConfig(ctx, cfg, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techradar/pkg/cache"
	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
	"github.com/matzehuels/techradar/pkg/core/render/radar/styles"
	"github.com/matzehuels/techradar/pkg/errors"
	radario "github.com/matzehuels/techradar/pkg/io"
)

// Defaults shared by the CLI, the config file and the HTTP service.
const (
	DefaultWidth     = 800.0
	DefaultHeight    = 800.0
	DefaultStyle     = "filled"
	DefaultPlacement = "refined"
	DefaultScale     = 2.0 // PNG pixels per SVG unit
)

const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists the output formats in display order.
var Formats = []string{FormatSVG, FormatHTML, FormatPNG, FormatPDF, FormatJSON}

// ValidFormats is Formats as a set.
var ValidFormats = func() map[string]bool {
	m := make(map[string]bool, len(Formats))
	for _, f := range Formats {
		m[f] = true
	}
	return m
}()

// ContentTypes maps output formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatHTML: "text/html; charset=utf-8",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// Options configures a run. Zero fields take the defaults above; the JSON
// form is what the HTTP service echoes back in layout responses.
type Options struct {
	// Parse options
	Path        string `json:"path,omitempty"`
	InputFormat string `json:"input_format,omitempty"`

	// Layout options
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Radial     string  `json:"radial,omitempty"`
	ExtraRings int     `json:"extra_rings,omitempty"` // Zero means the default under the widened policy
	Key        string  `json:"key,omitempty"`
	Placement  string  `json:"placement,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Legend  bool     `json:"legend,omitempty"`
	Popups  bool     `json:"popups,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	RSVG    bool     `json:"rsvg,omitempty"` // Rasterize PNG through rsvg-convert

	// Runtime options (not serialized)
	Logger   *log.Logger `json:"-"`
	Datasets []string    `json:"-"` // HTML dataset switcher entries
	Dataset  string      `json:"-"` // Current dataset in the switcher
	BaseURL  string      `json:"-"` // Switcher navigation target

	validated bool
}

// Result holds the dataset, its layout and the rendered artifacts keyed by
// format. ConfigHash is the cache key of the normalized dataset.
type Result struct {
	Config     radar.Config
	ConfigHash string
	Layout     layout.Layout
	Artifacts  map[string][]byte
	Stats      Stats
	CacheInfo  CacheInfo
}

type Stats struct {
	Entries    int // Entries in the dataset
	Placed     int // Entries drawn on the radar
	Unresolved int // Entries skipped by layout
	Skipped    int // Rows dropped during import
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo reports which stages were served from the cache. RenderHit is
// set only when every requested artifact was cached.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func ValidateStyle(style string) error {
	_, err := styles.ByName(style)
	return err
}

// ValidatePlacement checks that a placement preset is valid.
func ValidatePlacement(name string) error {
	if _, ok := layout.MarginsByName(name); !ok {
		return errors.New(errors.ErrCodeInvalidPolicy, "invalid placement: %q (must be one of: simple, refined)", name)
	}
	return nil
}

// ValidateAndSetDefaults prepares o for Execute. Repeated calls are no-ops.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for reading a dataset file.
func (o *Options) ValidateForParse() error {
	if o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input path is required")
	}
	if o.InputFormat != "" {
		if _, err := radario.ParseFormat(o.InputFormat); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Radial == "" {
		o.Radial = string(layout.PolicyWidened)
	}
	if o.ExtraRings == 0 && o.Radial == string(layout.PolicyWidened) {
		o.ExtraRings = layout.DefaultExtraRings
	}
	if o.Key == "" {
		o.Key = string(layout.KeyName)
	}
	if o.Placement == "" {
		o.Placement = DefaultPlacement
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateDimension("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateDimension("height", o.Height); err != nil {
		return err
	}
	if err := ValidatePlacement(o.Placement); err != nil {
		return err
	}
	return o.LayoutOptions().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive")
	}
	return ValidateStyle(o.Style)
}

// LayoutOptions converts to layout options. Call after SetLayoutDefaults.
func (o *Options) LayoutOptions() layout.Options {
	opts := layout.DefaultOptions()
	opts.Radial = layout.RadialPolicy(o.Radial)
	opts.ExtraRings = o.ExtraRings
	opts.Key = layout.KeyPolicy(o.Key)
	if m, ok := layout.MarginsByName(o.Placement); ok {
		opts.Margins = m
	}
	return opts
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:      o.Width,
		Height:     o.Height,
		Radial:     o.Radial,
		ExtraRings: o.ExtraRings,
		Key:        o.Key,
		Placement:  o.Placement,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Legend: o.Legend,
		Popups: o.Popups,
	}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
		if o.RSVG {
			k.Extra = "rsvg"
		}
	case FormatHTML:
		if len(o.Datasets) > 0 {
			k.Extra = cache.Hash([]byte(o.BaseURL + "\x00" + o.Dataset + "\x00" + strings.Join(o.Datasets, "\x00")))
		}
	}
	return k
}
