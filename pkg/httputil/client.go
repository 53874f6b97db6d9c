package httputil

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/techradar/pkg/buildinfo"
	"github.com/matzehuels/techradar/pkg/errors"
)

const (
	httpTimeout = 30 * time.Second

	// MaxBodyBytes bounds the size of a downloaded dataset.
	MaxBodyBytes = 32 << 20
)

// Client downloads datasets with retries and an optional response cache.
type Client struct {
	http     *http.Client
	cache    *Cache
	headers  map[string]string
	attempts int
	delay    time.Duration
}

// NewClient creates a Client. cache may be nil to disable caching.
func NewClient(cache *Cache) *Client {
	return &Client{
		http:     &http.Client{Timeout: httpTimeout},
		cache:    cache,
		headers:  map[string]string{"User-Agent": buildinfo.UserAgent()},
		attempts: 3,
		delay:    500 * time.Millisecond,
	}
}

// IsURL reports whether s names a remote dataset rather than a local file.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetch returns the body at rawURL, from the cache when a fresh copy exists.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	return c.fetch(ctx, rawURL, false)
}

// Refresh downloads rawURL even if a fresh copy is cached.
func (c *Client) Refresh(ctx context.Context, rawURL string) ([]byte, error) {
	return c.fetch(ctx, rawURL, true)
}

func (c *Client) fetch(ctx context.Context, rawURL string, refresh bool) ([]byte, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	var stale *Entry
	if c.cache != nil {
		e, err := c.cache.Get(rawURL)
		switch {
		case err == nil && e != nil && !refresh:
			return e.Body, nil
		case e != nil:
			stale = e
		}
	}

	var entry Entry
	err := Retry(ctx, c.attempts, c.delay, func() error {
		e, err := c.get(ctx, rawURL, stale)
		if err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var re *RetryableError
		if stderrors.As(err, &re) {
			return nil, re.Err
		}
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(rawURL, entry)
	}
	return entry.Body, nil
}

func (c *Client) get(ctx context.Context, rawURL string, stale *Entry) (Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Entry{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "fetch %s", rawURL)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if stale != nil && stale.ETag != "" {
		req.Header.Set("If-None-Match", stale.ETag)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Entry{}, &RetryableError{Err: errors.Wrap(errors.ErrCodeUnavailable, err, "fetch %s", rawURL)}
	}
	defer resp.Body.Close()

	switch code := resp.StatusCode; {
	case code == http.StatusNotModified && stale != nil:
		e := *stale
		e.FetchedAt = time.Now()
		return e, nil
	case code == http.StatusOK:
	case code == http.StatusNotFound:
		return Entry{}, errors.New(errors.ErrCodeFileNotFound, "fetch %s: not found", rawURL)
	case code >= 500 || code == http.StatusTooManyRequests:
		return Entry{}, &RetryableError{Err: errors.New(errors.ErrCodeUnavailable, "fetch %s: status %d", rawURL, code)}
	default:
		return Entry{}, errors.New(errors.ErrCodeUnavailable, "fetch %s: status %d", rawURL, code)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return Entry{}, &RetryableError{Err: errors.Wrap(errors.ErrCodeUnavailable, err, "read %s", rawURL)}
	}
	if len(body) > MaxBodyBytes {
		return Entry{}, errors.New(errors.ErrCodeInvalidInput, "fetch %s: dataset larger than %d bytes", rawURL, MaxBodyBytes)
	}
	return Entry{
		URL:       rawURL,
		ETag:      resp.Header.Get("ETag"),
		Body:      body,
		FetchedAt: time.Now(),
	}, nil
}
