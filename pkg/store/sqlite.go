package store

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/errors"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS datasets (
	id TEXT NOT NULL,
	name TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	entries INTEGER NOT NULL DEFAULT 0,
	config TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// SQLiteStore keeps datasets in a single SQLite database. The radar
// definition is stored as JSON next to summary columns used by List.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates a SQLite database at path and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidPath, "sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create sqlite dir")
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "open sqlite")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "ping sqlite")
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "init sqlite schema")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, name string) (Dataset, error) {
	if err := errors.ValidateDatasetName(name); err != nil {
		return Dataset{}, err
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT id, config, updated_at FROM datasets WHERE name = ?`, name)

	var (
		ds      = Dataset{Name: name}
		raw     string
		updated int64
	)
	if err := row.Scan(&ds.ID, &raw, &updated); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return Dataset{}, NotFound(name)
		}
		return Dataset{}, errors.Wrap(errors.ErrCodeUnavailable, err, "get dataset %s", name)
	}
	if err := json.Unmarshal([]byte(raw), &ds.Config); err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidDataset, err, "parse dataset %s", name)
	}
	ds.UpdatedAt = time.UnixMilli(updated).UTC()
	return ds, nil
}

func (s *SQLiteStore) Put(ctx context.Context, name string, cfg radar.Config) (Dataset, error) {
	if err := validatePut(name, cfg); err != nil {
		return Dataset{}, err
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInternal, err, "marshal dataset %s", name)
	}
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
INSERT INTO datasets (id, name, title, entries, config, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	title = excluded.title,
	entries = excluded.entries,
	config = excluded.config,
	updated_at = excluded.updated_at`,
		uuid.NewString(), name, cfg.Title, len(cfg.Entries), string(raw), now.UnixMilli())
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeUnavailable, err, "put dataset %s", name)
	}
	return s.Get(ctx, name)
}

func (s *SQLiteStore) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, title, entries, updated_at FROM datasets ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "list datasets")
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			updated int64
		)
		if err := rows.Scan(&sum.Name, &sum.Title, &sum.Entries, &updated); err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "scan dataset")
		}
		sum.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "list datasets")
	}
	return out, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateDatasetName(name); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE name = ?`, name)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "delete dataset %s", name)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return NotFound(name)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
