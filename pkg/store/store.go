// Package store persists named radar datasets for the HTTP service and the
// dataset commands.
//
// Three backends implement [Store]:
//   - [FileStore]: one JSON file per dataset in a directory (CLI default)
//   - [SQLiteStore]: a single SQLite database file
//   - [MongoStore]: a MongoDB collection for multi-instance deployments
//
// Use [Open] to pick a backend from a location string:
//
//	s, err := store.Open(ctx, "sqlite:///var/lib/techradar/radar.db")
//	s, err := store.Open(ctx, "mongodb://localhost:27017/techradar")
//	s, err := store.Open(ctx, "/home/me/.local/share/techradar/datasets")
package store

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/errors"
)

// Dataset is a stored radar definition.
type Dataset struct {
	ID        string       `json:"id" bson:"_id"`
	Name      string       `json:"name" bson:"name"`
	UpdatedAt time.Time    `json:"updated_at" bson:"updated_at"`
	Config    radar.Config `json:"config" bson:"config"`
}

// Summary describes a dataset without its entries.
type Summary struct {
	Name      string    `json:"name" bson:"name"`
	Title     string    `json:"title,omitempty" bson:"title"`
	Entries   int       `json:"entries" bson:"entries"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is a dataset repository. Missing datasets are reported with
// errors.ErrCodeDatasetNotFound.
type Store interface {
	Get(ctx context.Context, name string) (Dataset, error)
	// Put creates or replaces a dataset. The ID of an existing dataset is kept.
	Put(ctx context.Context, name string, cfg radar.Config) (Dataset, error)
	// List returns summaries sorted by name.
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// NotFound builds the error returned for a missing dataset.
func NotFound(name string) error {
	return errors.New(errors.ErrCodeDatasetNotFound, "dataset %q not found", name)
}

// IsNotFound reports whether err is a missing-dataset error.
func IsNotFound(err error) bool {
	return errors.Is(err, errors.ErrCodeDatasetNotFound)
}

// Open selects a backend from location:
//   - mongodb:// or mongodb+srv:// URIs open a [MongoStore]; the database
//     is taken from the URI path and defaults to "techradar"
//   - sqlite:// URIs and paths ending in .db or .sqlite open a [SQLiteStore]
//   - anything else is a directory for a [FileStore]
func Open(ctx context.Context, location string) (Store, error) {
	switch {
	case strings.HasPrefix(location, "mongodb://"), strings.HasPrefix(location, "mongodb+srv://"):
		return OpenMongo(ctx, location)
	case strings.HasPrefix(location, "sqlite://"):
		return OpenSQLite(ctx, strings.TrimPrefix(location, "sqlite://"))
	case strings.HasSuffix(location, ".db"), strings.HasSuffix(location, ".sqlite"):
		return OpenSQLite(ctx, location)
	default:
		return NewFileStore(location)
	}
}

// validatePut checks a dataset before it is written.
func validatePut(name string, cfg radar.Config) error {
	if err := errors.ValidateDatasetName(name); err != nil {
		return err
	}
	return cfg.Validate()
}

func summarize(name string, cfg radar.Config, updated time.Time) Summary {
	return Summary{Name: name, Title: cfg.Title, Entries: len(cfg.Entries), UpdatedAt: updated}
}
