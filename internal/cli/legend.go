package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/core/render/radar/layout"
	"github.com/matzehuels/techradar/pkg/core/render/radar/sink"
)

// legendCommand creates the legend command that prints the radar key as tables.
func (c *CLI) legendCommand() *cobra.Command {
	var (
		src     source
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "legend [file]",
		Short: "Print the rings and the numbered entries per quadrant",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := src.resolve(args); err != nil {
				return err
			}
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			res, err := c.load(cmd.Context(), cfg, src)
			if err != nil {
				return err
			}
			l, _, err := c.computeLayout(cmd.Context(), cfg, res.Config, noCache)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sink.Legend(l))
			}
			return writeLegend(cmd.OutOrStdout(), l)
		},
	}

	c.sourceFlags(cmd, &src)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the legend as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// writeLegend prints a ring table, the movement key and one entry table per quadrant.
func writeLegend(w io.Writer, l layout.Layout) error {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	newTable := func(headers ...string) *table.Table {
		return table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers(headers...)
	}

	if l.Title != "" {
		fmt.Fprintln(w, StyleTitle.Render(l.Title))
	}

	counts := make([]int, len(l.Bands))
	for _, b := range l.Blips {
		counts[b.Ring]++
	}
	rings := newTable("#", "Ring", "Entries")
	for i, b := range l.Bands {
		rings.Row(strconv.Itoa(i+1), b.Name, strconv.Itoa(counts[i]))
	}
	bands := l.Bands
	rings.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if col == 1 && row < len(bands) {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(bands[row].Color)).Bold(true)
		}
		return lipgloss.NewStyle()
	})
	fmt.Fprintln(w, rings.Render())

	for _, m := range radar.Movements {
		fmt.Fprintln(w, StyleDim.Render(m.Symbol()+" "+m.String()))
	}

	for _, s := range sink.Legend(l) {
		fmt.Fprintln(w)
		fmt.Fprintln(w, StyleHighlight.Render(fmt.Sprintf("%d. %s", s.Number, s.Quadrant)))
		if len(s.Entries) == 0 {
			fmt.Fprintln(w, StyleDim.Render("  no entries"))
			continue
		}
		t := newTable("Entry", "Ring", "Link")
		for _, e := range s.Entries {
			t.Row(e.Label, e.Ring, e.Link)
		}
		t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 {
				return StyleLink
			}
			return lipgloss.NewStyle()
		})
		if _, err := fmt.Fprintln(w, t.Render()); err != nil {
			return err
		}
	}
	return nil
}
