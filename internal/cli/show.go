package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/errors"
)

const noDescription = "_No description_"

// showCommand creates the show command that prints one entry.
func (c *CLI) showCommand() *cobra.Command {
	var (
		src  source
		wrap int
	)

	cmd := &cobra.Command{
		Use:   "show [file] <entry>",
		Short: "Show the details of one entry",
		Long: `Show the details of one entry: quadrant, ring, movement, tags, link and the
description, with its markdown rendered for the terminal.`,
		Example: `  techradar show radar.yaml Rust
  techradar show --dataset platform "Apache Kafka"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[len(args)-1]
			if err := src.resolve(args[:len(args)-1]); err != nil {
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

			e, ok := res.Config.Entry(name)
			if !ok {
				return errors.New(errors.ErrCodeEntryNotFound, "no entry named %q in %s", name, src.name())
			}
			out, err := renderMarkdown(entryMarkdown(e), wrap)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	c.sourceFlags(cmd, &src)
	cmd.Flags().IntVar(&wrap, "wrap", 80, "wrap width")

	return cmd
}

// entryMarkdown formats e as a markdown document.
func entryMarkdown(e radar.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", e.Name)

	meta := []string{"**" + e.Quadrant + "**", "**" + e.Ring + "**"}
	if sym := e.Moved.Symbol(); sym != "" {
		meta = append(meta, sym+" "+e.Moved.String())
	}
	b.WriteString(strings.Join(meta, " · "))
	b.WriteString("\n\n")

	if desc := strings.TrimSpace(e.Description); desc != "" {
		b.WriteString(desc)
	} else {
		b.WriteString(noDescription)
	}
	b.WriteString("\n")

	if len(e.Tags) > 0 {
		tags := make([]string, len(e.Tags))
		for i, t := range e.Tags {
			tags[i] = "`" + t + "`"
		}
		fmt.Fprintf(&b, "\n%s\n", strings.Join(tags, " "))
	}
	if e.Link != "" {
		fmt.Fprintf(&b, "\n[More](%s)\n", e.Link)
	}
	return b.String()
}

// renderMarkdown renders md for the terminal, picking a dark or light
// style from the terminal background.
func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create markdown renderer")
	}
	out, err := r.Render(md)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "render markdown")
	}
	return out, nil
}
