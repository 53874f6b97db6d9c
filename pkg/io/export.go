package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/errors"
)

// WriteJSON encodes cfg as indented native JSON.
// The output can be re-imported with [Read] using FormatJSON.
func WriteJSON(cfg radar.Config, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return nil
}

// ExportJSON writes cfg to a JSON file at path.
func ExportJSON(cfg radar.Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(cfg, f)
}
