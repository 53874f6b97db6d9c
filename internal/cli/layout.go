package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/internal/config"
	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/pipeline"
)

// layoutCommand creates the layout command for computing radar layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		src     source
		output  string
		noCache bool
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute the radar layout as JSON",
		Long: `Compute the radar layout as JSON.

The layout holds the structure (center, radius, one band per ring, one sector
per quadrant) and the position and color of every placed entry. It is the same
document 'render -f json' writes. Use -o - to print it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := src.resolve(args); err != nil {
				return err
			}
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			return c.runLayout(cmd, cfg, src, output, noCache)
		},
	}

	c.sourceFlags(cmd, &src)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	layoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the radar, computes the layout, and writes output.
func (c *CLI) runLayout(cmd *cobra.Command, cfg *config.Config, src source, output string, noCache bool) error {
	ctx := cmd.Context()
	res, err := c.load(ctx, cfg, src)
	if err != nil {
		return err
	}

	l, cacheHit, err := c.computeLayout(ctx, cfg, res.Config, noCache)
	if err != nil {
		return err
	}

	data, err := layout.Marshal(l)
	if err != nil {
		return err
	}
	if output == "-" {
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}

	path := output
	if path == "" {
		path = outputPath(src, "", pipeline.FormatJSON, false)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}

	printSuccess("Layout complete")
	printFile(path)
	stats := res.Config.Stats()
	printStats(pipeline.Stats{Entries: stats.Entries, Placed: len(l.Blips), Unresolved: stats.Unresolved, Skipped: res.Skipped}, cacheHit)
	printNewline()
	printNextStep("Render", "techradar render "+src.arg())
	return nil
}

// computeLayout lays out rc with the layout settings of cfg.
func (c *CLI) computeLayout(ctx context.Context, cfg *config.Config, rc radar.Config, noCache bool) (layout.Layout, bool, error) {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return layout.Layout{}, false, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := cfg.PipelineOptions()
	opts.Logger = c.Logger
	l, hit, err := runner.GenerateLayoutWithCacheInfo(ctx, rc, opts)
	if err != nil {
		return layout.Layout{}, false, err
	}
	if ctx.Err() != nil {
		return layout.Layout{}, false, ctx.Err()
	}
	return l, hit, nil
}
