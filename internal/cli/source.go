package cli

import (
	"context"
	"net/url"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techradar/internal/config"
	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/httputil"
	radario "github.com/matzehuels/techradar/pkg/io"
	"github.com/matzehuels/techradar/pkg/pipeline"
)

// source is where a command reads its radar from: a dataset file or a
// dataset in the store.
type source struct {
	path    string
	format  string
	dataset string
}

// name labels output files and messages.
func (s source) name() string {
	if s.dataset != "" {
		return s.dataset
	}
	return baseName(s.path)
}

// arg is the command-line form of s.
func (s source) arg() string {
	if s.dataset != "" {
		return "--dataset " + s.dataset
	}
	return s.path
}

// sourceFlags registers --dataset and --input-format on cmd.
func (c *CLI) sourceFlags(cmd *cobra.Command, src *source) {
	cmd.Flags().StringVarP(&src.dataset, "dataset", "d", "", "read the named dataset from the store instead of a file")
	cmd.Flags().StringVar(&src.format, "input-format", "", "input format: json, yaml, toml, zalando, xlsx (default: from extension)")
	_ = cmd.RegisterFlagCompletionFunc("dataset", c.completeDatasets)
}

// resolve fills the file path from args. Exactly one of a file argument
// and --dataset must be given.
func (s *source) resolve(args []string) error {
	switch {
	case s.dataset != "" && len(args) > 0:
		return errors.New(errors.ErrCodeInvalidInput, "give either a dataset file or --dataset, not both")
	case s.dataset != "":
		return errors.ValidateDatasetName(s.dataset)
	case len(args) == 0:
		return errors.New(errors.ErrCodeInvalidInput, "a dataset file or --dataset is required")
	}
	s.path = args[0]
	return nil
}

// remote reports whether src is downloaded rather than read from disk.
func (s source) remote() bool {
	return s.dataset == "" && httputil.IsURL(s.path)
}

// load reads and validates the radar named by src.
func (c *CLI) load(ctx context.Context, cfg *config.Config, src source) (radario.Result, error) {
	if src.remote() {
		return c.fetch(ctx, cfg, src)
	}
	if src.dataset == "" {
		return pipeline.Parse(pipeline.Options{
			Path:        src.path,
			InputFormat: src.format,
			Logger:      c.Logger,
		})
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return radario.Result{}, err
	}
	defer st.Close()

	ds, err := st.Get(ctx, src.dataset)
	if err != nil {
		return radario.Result{}, err
	}
	c.Logger.Debug("loaded dataset", "name", ds.Name, "updated", ds.UpdatedAt)
	return radario.Result{Config: ds.Config, Format: radario.FormatJSON}, nil
}

// remoteTTL is how long a downloaded dataset is served without revalidation.
const remoteTTL = time.Hour

func (c *CLI) fetch(ctx context.Context, cfg *config.Config, src source) (radario.Result, error) {
	u, err := url.Parse(src.path)
	if err != nil {
		return radario.Result{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", src.path)
	}

	var format radario.Format
	if src.format != "" {
		if format, err = radario.ParseFormat(src.format); err != nil {
			return radario.Result{}, err
		}
	} else if f, err := radario.Detect(u.Path); err == nil {
		format = f
	}

	hc, err := httputil.NewCache(filepath.Join(cacheDirOf(cfg), "http"), remoteTTL)
	if err != nil {
		c.Logger.Warn("download cache unavailable", "err", err)
	}
	data, err := httputil.NewClient(hc).Fetch(ctx, src.path)
	if err != nil {
		return radario.Result{}, err
	}
	c.Logger.Debug("downloaded dataset", "url", src.path, "bytes", len(data), "format", format)

	res, err := radario.ReadBytes(data, format)
	if err != nil {
		return res, errors.Wrap(errors.GetCode(err), err, "import %s", src.path)
	}
	if res.Skipped > 0 {
		c.Logger.Warn("dropped entries during import", "url", src.path, "format", res.Format, "skipped", res.Skipped)
	}
	return res, nil
}
