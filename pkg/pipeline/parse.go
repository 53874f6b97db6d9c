package pipeline

import (
	radario "github.com/matzehuels/techradar/pkg/io"
)

// Parse reads and normalizes the dataset at opts.Path.
// Result.Skipped counts rows dropped during import; they are logged as a warning.
func Parse(opts Options) (radario.Result, error) {
	var format radario.Format
	if opts.InputFormat != "" {
		f, err := radario.ParseFormat(opts.InputFormat)
		if err != nil {
			return radario.Result{}, err
		}
		format = f
	}
	res, err := radario.ImportFile(opts.Path, format)
	if err != nil {
		return res, err
	}
	if res.Skipped > 0 && opts.Logger != nil {
		opts.Logger.Warn("dropped entries during import", "path", opts.Path, "format", res.Format, "skipped", res.Skipped)
	}
	return res, nil
}
