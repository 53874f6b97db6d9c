package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/errors"
	radario "github.com/matzehuels/techradar/pkg/io"
)

// datasetCommand creates the dataset command group that manages the store.
func (c *CLI) datasetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dataset",
		Aliases: []string{"ds"},
		Short:   "Manage stored datasets",
		Long: `Manage the datasets in the store.

The store is a directory of JSON files by default. Point --store (or
store.location in the config file) at a .db file for SQLite or at a
mongodb:// URI for MongoDB.`,
	}

	cmd.PersistentFlags().String("store", "", "dataset store location (directory, .db file or mongodb:// URI)")

	cmd.AddCommand(c.datasetListCommand())
	cmd.AddCommand(c.datasetGetCommand())
	cmd.AddCommand(c.datasetPutCommand())
	cmd.AddCommand(c.datasetDeleteCommand())

	return cmd
}

func (c *CLI) datasetListCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored datasets",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			summaries, err := st.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if quiet {
				for _, s := range summaries {
					fmt.Fprintln(out, s.Name)
				}
				return nil
			}
			if len(summaries) == 0 {
				printInfo("No datasets in %s", cfg.Store.Location)
				return nil
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Name", "Title", "Entries", "Updated")
			for _, s := range summaries {
				t.Row(s.Name, s.Title, strconv.Itoa(s.Entries), s.UpdatedAt.Local().Format(time.DateTime))
			}
			t.StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
				case col == 0:
					return StyleHighlight
				case col == 2:
					return StyleNumber
				}
				return lipgloss.NewStyle()
			})
			_, err = fmt.Fprintln(out, t.Render())
			return err
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print names only")

	return cmd
}

func (c *CLI) datasetGetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:               "get <name>",
		Short:             "Print a stored dataset as JSON",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeDatasets,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateDatasetName(args[0]); err != nil {
				return err
			}
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			ds, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output == "" {
				return radario.WriteJSON(ds.Config, cmd.OutOrStdout())
			}
			if err := radario.ExportJSON(ds.Config, output); err != nil {
				return err
			}
			printSuccess("Exported dataset %s", ds.Name)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) datasetPutCommand() *cobra.Command {
	var src source

	cmd := &cobra.Command{
		Use:   "put <name> <file|url>",
		Short: "Store a dataset under a name",
		Long: `Store a dataset under a name, replacing any dataset of that name.

The input is imported like in "techradar import" and validated before it is
written.`,
		Example: `  techradar dataset put platform radar.yaml
  techradar dataset put platform https://example.com/radar.xlsx`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return c.completeDatasets(cmd, args, toComplete)
			}
			return nil, cobra.ShellCompDirectiveDefault
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := errors.ValidateDatasetName(name); err != nil {
				return err
			}
			src.path = args[1]
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			res, err := c.load(cmd.Context(), cfg, src)
			if err != nil {
				return err
			}

			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			ds, err := st.Put(cmd.Context(), name, res.Config)
			if err != nil {
				return err
			}
			printSuccess("Saved dataset %s", ds.Name)
			printKeyValue("Format", string(res.Format))
			printKeyValue("Entries", StyleNumber.Render(strconv.Itoa(len(ds.Config.Entries))))
			if res.Skipped > 0 {
				printWarning("%d rows could not be converted and were dropped", res.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&src.format, "input-format", "", "input format: json, yaml, toml, zalando, xlsx (default: from extension)")

	return cmd
}

func (c *CLI) datasetDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "delete <name>",
		Aliases:           []string{"rm"},
		Short:             "Delete a stored dataset",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeDatasets,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateDatasetName(args[0]); err != nil {
				return err
			}
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted dataset %s", args[0])
			return nil
		},
	}
	return cmd
}
