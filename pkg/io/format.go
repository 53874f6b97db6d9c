package io

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/matzehuels/techradar/pkg/errors"
)

// Format identifies a dataset encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatTOML    Format = "toml"
	FormatZalando Format = "zalando"
	FormatXLSX    Format = "xlsx"
)

// Formats lists every supported input format.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML, FormatZalando, FormatXLSX}

// ParseFormat validates a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatTOML, FormatZalando, FormatXLSX:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown input format: %q (must be one of: json, yaml, toml, zalando, xlsx)", s)
}

// Detect picks a format from the file extension. A .json file is reported as
// FormatJSON; use [Sniff] to tell native and Zalando documents apart.
func Detect(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect format of %s (extension %q)", path, ext)
	}
}

// Sniff refines FormatJSON to FormatZalando when the document references
// quadrants by index rather than by name.
func Sniff(data []byte) Format {
	var doc struct {
		Entries []struct {
			Quadrant json.RawMessage `json:"quadrant"`
		} `json:"entries"`
	}
	if json.Unmarshal(data, &doc) != nil {
		return FormatJSON
	}
	for _, e := range doc.Entries {
		q := bytes.TrimSpace(e.Quadrant)
		if len(q) == 0 || string(q) == "null" {
			continue
		}
		if q[0] == '-' || (q[0] >= '0' && q[0] <= '9') {
			return FormatZalando
		}
		return FormatJSON
	}
	return FormatJSON
}
