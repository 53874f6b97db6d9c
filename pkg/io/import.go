package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/errors"
)

// Result is a dataset normalized to the native model.
type Result struct {
	Config  radar.Config
	Format  Format
	Skipped int // Rows or entries dropped during normalization
}

// Read decodes r in the given format and validates the result.
//
// Native formats (JSON, YAML, TOML) decode straight into [radar.Config].
// Zalando and XLSX documents are normalized; dropped items are counted in
// Result.Skipped. Entries whose quadrant or ring do not resolve are kept:
// layout skips them.
func Read(r io.Reader, f Format) (Result, error) {
	var (
		res = Result{Format: f}
		err error
	)
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&res.Config)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&res.Config)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&res.Config)
	case FormatZalando:
		res.Config, res.Skipped, err = readZalando(r)
	case FormatXLSX:
		res.Config, res.Skipped, err = readXLSX(r)
	default:
		_, err = ParseFormat(string(f))
		return res, err
	}
	if err != nil {
		if errors.GetCode(err) != "" {
			return res, err
		}
		return res, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	if err := res.Config.Validate(); err != nil {
		return res, err
	}
	return res, nil
}

// ReadBytes is [Read] over an in-memory document. An empty format is
// detected: JSON is sniffed for Zalando, anything else is tried as native JSON.
func ReadBytes(data []byte, f Format) (Result, error) {
	if f == "" || f == FormatJSON {
		f = Sniff(data)
	}
	return Read(bytes.NewReader(data), f)
}

// ImportFile reads a dataset file. An empty format is detected from the
// extension and, for .json files, from the content.
func ImportFile(path string, f Format) (Result, error) {
	if f == "" {
		var err error
		if f, err = Detect(path); err != nil {
			return Result{}, err
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Result{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	if f == FormatJSON {
		f = Sniff(data)
	}
	res, err := Read(bytes.NewReader(data), f)
	if err != nil {
		return res, errors.Wrap(errors.GetCode(err), err, "import %s", path)
	}
	return res, nil
}
