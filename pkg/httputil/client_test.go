package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/techradar/pkg/errors"
)

func testClient(t *testing.T, cache *Cache) *Client {
	t.Helper()
	c := NewClient(cache)
	c.delay = time.Millisecond
	return c
}

func TestFetch(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.Write([]byte("title: Radar\n"))
	}))
	defer srv.Close()

	got, err := testClient(t, nil).Fetch(context.Background(), srv.URL+"/radar.yaml")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(got) != "title: Radar\n" {
		t.Errorf("Fetch() = %q", got)
	}
	if !strings.HasPrefix(agent, "techradar/") {
		t.Errorf("User-Agent = %q, want techradar/...", agent)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	got, err := testClient(t, nil).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(got) != "ok" || calls.Load() != 3 {
		t.Errorf("Fetch() = %q after %d calls, want ok after 3", got, calls.Load())
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCode  errors.Code
		wantCalls int32
	}{
		{"not found", http.StatusNotFound, errors.ErrCodeFileNotFound, 1},
		{"forbidden", http.StatusForbidden, errors.ErrCodeUnavailable, 1},
		{"persistent 5xx", http.StatusBadGateway, errors.ErrCodeUnavailable, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := testClient(t, nil).Fetch(context.Background(), srv.URL)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Fetch() error = %v, want code %s", err, tt.wantCode)
			}
			if calls.Load() != tt.wantCalls {
				t.Errorf("server called %d times, want %d", calls.Load(), tt.wantCalls)
			}
		})
	}
}

func TestFetchRejectsNonHTTP(t *testing.T) {
	_, err := testClient(t, nil).Fetch(context.Background(), "file:///etc/passwd")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Fetch(file://) error = %v, want INVALID_INPUT", err)
	}
}

func TestFetchUsesCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("body"))
	}))
	defer srv.Close()

	cache, _ := NewCache(t.TempDir(), time.Hour)
	client := testClient(t, cache)
	for i := 0; i < 2; i++ {
		if _, err := client.Fetch(context.Background(), srv.URL); err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("server called %d times, want 1", calls.Load())
	}

	if _, err := client.Refresh(context.Background(), srv.URL); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("Refresh() did not reach the server")
	}
}

func TestFetchRevalidatesStaleEntry(t *testing.T) {
	var conditional atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == `"v1"` {
			conditional.Store(true)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	cache, _ := NewCache(t.TempDir(), time.Minute)
	stale := Entry{URL: srv.URL, ETag: `"v1"`, Body: []byte("cached"), FetchedAt: time.Now().Add(-time.Hour)}
	if err := cache.Set(srv.URL, stale); err != nil {
		t.Fatal(err)
	}

	got, err := testClient(t, cache).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if !conditional.Load() {
		t.Error("expected a conditional request")
	}
	if string(got) != "cached" {
		t.Errorf("Fetch() = %q, want the revalidated body", got)
	}
	if e, err := cache.Get(srv.URL); err != nil || e == nil {
		t.Errorf("entry not renewed: %v", err)
	}
}

func TestFetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := testClient(t, nil).Fetch(ctx, srv.URL); err != context.Canceled {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}

func TestIsURL(t *testing.T) {
	for in, want := range map[string]bool{
		"https://example.com/radar.json": true,
		"http://localhost:8080/x.yaml":   true,
		"radar.yaml":                     false,
		"ftp://example.com/radar.json":   false,
	} {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}
