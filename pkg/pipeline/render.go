package pipeline

import (
	"context"

	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
	"github.com/matzehuels/techradar/pkg/core/render/radar/sink"
	"github.com/matzehuels/techradar/pkg/core/render/radar/styles"
	"github.com/matzehuels/techradar/pkg/errors"
)

// Render generates output artifacts in the requested formats.
// Call after ValidateForRender.
func Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	svgOpts, err := buildSVGOptions(opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatHTML:
			htmlOpts := []sink.HTMLOption{sink.WithHTMLSVGOptions(htmlSVGOptions(svgOpts, opts)...)}
			if len(opts.Datasets) > 0 {
				htmlOpts = append(htmlOpts, sink.WithDatasets(opts.BaseURL, opts.Datasets, opts.Dataset))
			}
			data, err = sink.RenderHTML(l, htmlOpts...)
		case FormatPNG:
			pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
			if opts.RSVG {
				pngOpts = append(pngOpts, sink.WithRSVG(), sink.WithPNGSVGOptions(svgOpts...))
			}
			data, err = sink.RenderPNG(ctx, l, pngOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			jsonOpts := []sink.JSONOption{sink.WithJSONStyle(opts.Style)}
			if opts.Legend {
				jsonOpts = append(jsonOpts, sink.WithJSONLegend())
			}
			data, err = sink.RenderJSON(l, jsonOpts...)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			if errors.GetCode(err) != "" {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVGOptions(opts Options) ([]sink.SVGOption, error) {
	style, err := styles.ByName(opts.Style)
	if err != nil {
		return nil, err
	}
	svgOpts := []sink.SVGOption{sink.WithStyle(style)}
	if opts.Legend {
		svgOpts = append(svgOpts, sink.WithLegend())
	}
	if opts.Popups {
		svgOpts = append(svgOpts, sink.WithPopups())
	}
	return svgOpts, nil
}

// htmlSVGOptions drops the SVG legend: the page draws its own.
func htmlSVGOptions(svgOpts []sink.SVGOption, opts Options) []sink.SVGOption {
	if !opts.Legend {
		return svgOpts
	}
	out, _ := buildSVGOptions(Options{Style: opts.Style, Popups: opts.Popups})
	return out
}
