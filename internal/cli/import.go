package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/pkg/errors"
	radario "github.com/matzehuels/techradar/pkg/io"
)

// importCommand creates the import command that converts datasets to native JSON.
func (c *CLI) importCommand() *cobra.Command {
	var (
		src    source
		output string
		save   string
	)

	cmd := &cobra.Command{
		Use:   "import <file|url>",
		Short: "Convert a dataset to native JSON",
		Long: `Convert a dataset to native JSON.

Accepts YAML, TOML, native or Zalando-style JSON, and XLSX spreadsheets with
"entries", "quadrants" and "rings" sheets, from a local file or an http(s) URL.
Rows that cannot be converted are dropped and counted.

Without -o the JSON is printed. With --save the dataset is stored under the
given name instead.`,
		Example: `  techradar import radar.xlsx -o radar.json
  techradar import https://example.com/entries.json --save platform`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src.path = args[0]
			if save != "" {
				if err := errors.ValidateDatasetName(save); err != nil {
					return err
				}
			}
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}

			res, err := c.load(cmd.Context(), cfg, src)
			if err != nil {
				return err
			}

			switch {
			case save != "":
				st, err := openStore(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer st.Close()
				ds, err := st.Put(cmd.Context(), save, res.Config)
				if err != nil {
					return err
				}
				printSuccess("Saved dataset %s", ds.Name)
				printKeyValue("Format", string(res.Format))
				printKeyValue("Entries", StyleNumber.Render(strconv.Itoa(len(ds.Config.Entries))))
			case output == "":
				return radario.WriteJSON(res.Config, cmd.OutOrStdout())
			default:
				if err := radario.ExportJSON(res.Config, output); err != nil {
					return err
				}
				printSuccess("Imported %s", src.path)
				printFile(output)
			}
			if res.Skipped > 0 {
				printWarning("%d rows could not be converted and were dropped", res.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&src.format, "input-format", "", "input format: json, yaml, toml, zalando, xlsx (default: from extension)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&save, "save", "", "store the dataset under this name")
	cmd.MarkFlagsMutuallyExclusive("output", "save")

	return cmd
}
