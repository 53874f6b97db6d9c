package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/errors"
)

// FileStore keeps each dataset as a JSON file in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based dataset store.
// If baseDir is empty, defaults to ~/.local/share/techradar/datasets/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".local", "share", "techradar", "datasets")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create dataset dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Dir returns the directory holding the dataset files.
func (s *FileStore) Dir() string { return s.baseDir }

func (s *FileStore) datasetPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

func (s *FileStore) Get(ctx context.Context, name string) (Dataset, error) {
	if err := errors.ValidateDatasetName(name); err != nil {
		return Dataset{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(name)
}

func (s *FileStore) read(name string) (Dataset, error) {
	data, err := os.ReadFile(s.datasetPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return Dataset{}, NotFound(name)
		}
		return Dataset{}, errors.Wrap(errors.ErrCodeUnavailable, err, "read dataset %s", name)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInvalidDataset, err, "parse dataset %s", name)
	}
	return ds, nil
}

func (s *FileStore) Put(ctx context.Context, name string, cfg radar.Config) (Dataset, error) {
	if err := validatePut(name, cfg); err != nil {
		return Dataset{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ds := Dataset{ID: uuid.NewString(), Name: name, UpdatedAt: time.Now().UTC(), Config: cfg}
	if prev, err := s.read(name); err == nil {
		ds.ID = prev.ID
	} else if !IsNotFound(err) {
		return Dataset{}, err
	}

	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeInternal, err, "marshal dataset %s", name)
	}

	path := s.datasetPath(name)
	tmp, err := os.CreateTemp(s.baseDir, ".tmp-*")
	if err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeUnavailable, err, "write dataset %s", name)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return Dataset{}, errors.Wrap(errors.ErrCodeUnavailable, err, "write dataset %s", name)
	}
	if err := tmp.Close(); err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeUnavailable, err, "write dataset %s", name)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return Dataset{}, errors.Wrap(errors.ErrCodeUnavailable, err, "write dataset %s", name)
	}
	return ds, nil
}

func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	files, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "read dataset dir")
	}
	var out []Summary
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		ds, err := s.read(strings.TrimSuffix(f.Name(), ".json"))
		if err != nil {
			continue
		}
		out = append(out, summarize(ds.Name, ds.Config, ds.UpdatedAt))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateDatasetName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.datasetPath(name)); err != nil {
		if os.IsNotExist(err) {
			return NotFound(name)
		}
		return errors.Wrap(errors.ErrCodeUnavailable, err, "delete dataset %s", name)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
