package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/pipeline"
)

// ValidationError is a single invalid setting.
type ValidationError struct {
	Field   string // Config key, e.g. "layout.radial"
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid setting found by Validate.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Valid enumerations.
var (
	ValidRadialPolicies = []string{"equal", "widened"}
	ValidKeyPolicies    = []string{"name", "record"}
	ValidPlacements     = []string{"refined", "simple"}
	ValidCacheBackends  = []string{CacheFile, CacheRedis, CacheNone}
)

// Validate returns every invalid setting in c.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	add := func(field string, value any, msg string) {
		errs = append(errs, ValidationError{Field: field, Value: value, Message: msg})
	}
	oneOf := func(field, value string, valid []string) {
		if !slices.Contains(valid, value) {
			add(field, value, "must be one of: "+strings.Join(valid, ", "))
		}
	}

	if err := errors.ValidateDimension("width", c.Layout.Width); err != nil {
		add("layout.width", c.Layout.Width, errors.UserMessage(err))
	}
	if err := errors.ValidateDimension("height", c.Layout.Height); err != nil {
		add("layout.height", c.Layout.Height, errors.UserMessage(err))
	}
	oneOf("layout.radial", c.Layout.Radial, ValidRadialPolicies)
	if c.Layout.ExtraRings < 0 {
		add("layout.extra_rings", c.Layout.ExtraRings, "must not be negative")
	}
	oneOf("layout.key", c.Layout.Key, ValidKeyPolicies)
	oneOf("layout.placement", c.Layout.Placement, ValidPlacements)

	for _, f := range c.Render.Formats {
		if err := pipeline.ValidateFormat(f); err != nil {
			add("render.formats", f, errors.UserMessage(err))
		}
	}
	if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
		add("render.style", c.Render.Style, errors.UserMessage(err))
	}
	if c.Render.Scale <= 0 {
		add("render.scale", c.Render.Scale, "must be positive")
	}

	oneOf("cache.backend", c.Cache.Backend, ValidCacheBackends)
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		add("cache.redis_addr", c.Cache.RedisAddr, "required when cache.backend is redis")
	}

	if c.Store.DefaultDataset != "" {
		if err := errors.ValidateDatasetName(c.Store.DefaultDataset); err != nil {
			add("store.default_dataset", c.Store.DefaultDataset, errors.UserMessage(err))
		}
	}
	if c.Server.BaseURL != "" && !strings.HasPrefix(c.Server.BaseURL, "/") {
		if err := errors.ValidateURL(c.Server.BaseURL); err != nil {
			add("server.base_url", c.Server.BaseURL, errors.UserMessage(err))
		}
	}
	return errs
}
