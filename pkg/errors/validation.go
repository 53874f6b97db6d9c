package errors

import (
	"math"
	"regexp"
	"strings"
)

// Dataset names become file names, SQLite and Mongo keys, cache key parts
// and URL path segments.
var datasetName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateDatasetName checks a stored dataset name: 1 to 128 letters,
// digits, '.', '_' or '-', starting with a letter or digit, never "..".
func ValidateDatasetName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidDataset, "dataset name cannot be empty")
	case strings.Contains(name, ".."):
		return New(ErrCodeInvalidDataset, "dataset name %q must not contain \"..\"", name)
	case !datasetName.MatchString(name):
		return New(ErrCodeInvalidDataset, "invalid dataset name %q (use up to 128 letters, digits, '.', '_' or '-')", name)
	}
	return nil
}

// ValidateURL accepts absolute http and https URLs only.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL %q must use http or https", rawURL)
	}
	return nil
}

// MaxDimension bounds canvas width and height.
const MaxDimension = 10000

// ValidateDimension checks a canvas width or height named name.
func ValidateDimension(name string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	case v <= 0:
		return New(ErrCodeInvalidInput, "%s must be positive", name)
	case v > MaxDimension:
		return New(ErrCodeInvalidInput, "%s too large (max %d)", name, MaxDimension)
	}
	return nil
}
