package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/internal/config"
	"github.com/matzehuels/techradar/pkg/errors"
	radario "github.com/matzehuels/techradar/pkg/io"
	"github.com/matzehuels/techradar/pkg/pipeline"
)

// renderFlags holds the options of the render command that are not settings.
type renderFlags struct {
	output  string
	formats string
	noCache bool
	watch   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		src   source
		flags renderFlags
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a radar to SVG, HTML, PNG, PDF or JSON",
		Long: `Render a radar from a dataset file or a stored dataset.

The dataset is laid out deterministically: the same entries and options always
produce the same picture. Output files are named after the input unless -o is
given; with several formats, the extension of -o is replaced per format.

Layouts and artifacts are cached; use --no-cache to bypass the cache.
With --watch the radar is re-rendered whenever the input file changes.`,
		Example: `  techradar render radar.yaml
  techradar render radar.yaml -f svg,html --legend
  techradar render --dataset platform -f png -o platform.png
  techradar render radar.xlsx --radial equal --placement simple --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := src.resolve(args); err != nil {
				return err
			}
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			ropts := cfg.PipelineOptions()
			if cmd.Flags().Changed("format") {
				ropts.Formats = parseFormats(flags.formats)
			}
			if err := pipeline.ValidateFormats(ropts.Formats); err != nil {
				return err
			}

			if flags.watch {
				if src.dataset != "" || src.remote() {
					return errors.New(errors.ErrCodeInvalidInput, "--watch needs a local dataset file")
				}
				return c.watchRender(cmd.Context(), cfg, src, ropts, flags)
			}
			return c.runRender(cmd.Context(), cfg, src, ropts, flags)
		},
	}

	c.sourceFlags(cmd, &src)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", strings.Join(opts.Formats, ","), "output formats: svg, html, png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render when the input file changes")
	layoutFlags(cmd, &opts)
	styleFlags(cmd, &opts)

	return cmd
}

// layoutFlags registers the flags that change placement. Their values reach
// the command through loadConfig.
func layoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "canvas height")
	cmd.Flags().StringVar(&opts.Radial, "radial", opts.Radial, "ring widths: widened (default), equal")
	cmd.Flags().IntVar(&opts.ExtraRings, "extra-rings", opts.ExtraRings, "extra widths given to the innermost ring (widened)")
	cmd.Flags().StringVar(&opts.Key, "key", opts.Key, "placement key: name (default), record")
	cmd.Flags().StringVar(&opts.Placement, "placement", opts.Placement, "placement margins: refined (default), simple")
}

func styleFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVar(&opts.Style, "style", opts.Style, "visual style: filled (default), outline")
	cmd.Flags().BoolVar(&opts.Legend, "legend", opts.Legend, "draw the legend next to the radar")
	cmd.Flags().BoolVar(&opts.Popups, "popups", opts.Popups, "embed hover popups in SVG output")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.RSVG, "rsvg", opts.RSVG, "rasterize PNG with rsvg-convert")
}

// runRender renders src once and writes one file per format.
func (c *CLI) runRender(ctx context.Context, cfg *config.Config, src source, opts pipeline.Options, flags renderFlags) error {
	runner, err := c.newRunner(ctx, cfg, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spin := startSpinner(ctx, "Rendering "+src.name()+"...")

	var result *pipeline.Result
	if src.dataset != "" || src.remote() {
		var res radario.Result
		if res, err = c.load(ctx, cfg, src); err != nil {
			spin.fail("Render failed")
			return err
		}
		if result, err = runner.ExecuteConfig(ctx, res.Config, opts); err == nil {
			result.Stats.Skipped = res.Skipped
		}
	} else {
		opts.Path = src.path
		opts.InputFormat = src.format
		result, err = runner.Execute(ctx, opts)
	}
	if err != nil {
		spin.fail("Render failed")
		return err
	}
	spin.stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, src, flags.output)
	if err != nil {
		return err
	}

	title := result.Config.Title
	if title == "" {
		title = src.name()
	}
	printSuccess("Rendered %s", title)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// writeArtifacts writes the rendered formats in order and returns the paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, src source, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := outputPath(src, output, f, len(formats) > 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath names the file for one format. Layout JSON gets a .layout.json
// suffix so it never replaces a JSON dataset.
func outputPath(src source, output, format string, multi bool) string {
	ext := "." + format
	if format == pipeline.FormatJSON {
		ext = ".layout.json"
	}
	switch {
	case output == "":
		if src.path != "" && !src.remote() {
			return strings.TrimSuffix(src.path, filepath.Ext(src.path)) + ext
		}
		return src.name() + ext
	case multi:
		return strings.TrimSuffix(output, filepath.Ext(output)) + ext
	}
	return output
}
