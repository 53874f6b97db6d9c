package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] along with the stale entry when the
// entry has outlived the TTL. The entry can still be revalidated.
var ErrExpired = errors.New("cache entry expired")

// Entry is one cached response.
type Entry struct {
	URL       string    `json:"url"`
	ETag      string    `json:"etag,omitempty"`
	Body      []byte    `json:"body"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Cache stores responses as JSON files named by the SHA-256 of their key.
//
// A Cache is not safe for concurrent use by multiple goroutines, but several
// processes may share a directory since every write replaces a whole file.
// A TTL of 0 means entries never expire.
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// NewCache creates a Cache in dir, or in ~/.cache/techradar/http when dir is empty.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "techradar", "http")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

func (c *Cache) Dir() string { return c.dir }

func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the entry stored under key.
//
//   - (entry, nil): fresh hit
//   - (nil, nil): miss
//   - (entry, ErrExpired): stale hit
//   - (nil, err): unreadable entry
func (c *Cache) Get(key string) (*Entry, error) {
	data, err := os.ReadFile(c.keyPath(c.prefix + key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if c.ttl > 0 && time.Since(e.FetchedAt) > c.ttl {
		return &e, ErrExpired
	}
	return &e, nil
}

// Set stores e under key, replacing any previous entry.
func (c *Cache) Set(key string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	path := c.keyPath(c.prefix + key)
	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Namespace returns a view of the cache that prefixes every key with prefix.
// Views share the directory and TTL.
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{
		dir:    c.dir,
		ttl:    c.ttl,
		prefix: c.prefix + prefix,
	}
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
