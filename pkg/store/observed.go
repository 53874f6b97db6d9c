package store

import (
	"context"
	"time"

	"github.com/matzehuels/techradar/pkg/core/radar"
	"github.com/matzehuels/techradar/pkg/observability"
)

// Observe wraps s so reads, writes and deletes are reported to
// observability.Store().
func Observe(s Store) Store {
	if _, ok := s.(observed); ok {
		return s
	}
	return observed{s}
}

type observed struct {
	Store
}

func (o observed) Get(ctx context.Context, name string) (Dataset, error) {
	start := time.Now()
	ds, err := o.Store.Get(ctx, name)
	observability.Store().OnDatasetRead(ctx, name, err == nil, time.Since(start))
	return ds, err
}

func (o observed) Put(ctx context.Context, name string, cfg radar.Config) (Dataset, error) {
	start := time.Now()
	ds, err := o.Store.Put(ctx, name, cfg)
	observability.Store().OnDatasetWrite(ctx, name, len(cfg.Entries), time.Since(start), err)
	return ds, err
}

func (o observed) Delete(ctx context.Context, name string) error {
	err := o.Store.Delete(ctx, name)
	observability.Store().OnDatasetDelete(ctx, name, err)
	return err
}
