package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/techradar/internal/config"
	"github.com/matzehuels/techradar/pkg/cache"
)

func TestCacheDirOf(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{"configured", "/var/cache/radar", "/var/cache/radar"},
		{"default", "", filepath.Join("/tmp/xdg-cache", appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Cache.Dir = tt.dir
			if got := cacheDirOf(cfg); got != tt.want {
				t.Errorf("cacheDirOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCachePathCommand(t *testing.T) {
	env := setupEnv(t)

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	want := filepath.Join(env.cache, appName)
	if strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	env := setupEnv(t)
	path := writeRadar(t, t.TempDir())

	if _, err := runCLI(t, "layout", path, "-o", "-"); err != nil {
		t.Fatalf("layout: %v", err)
	}
	dir := filepath.Join(env.cache, appName)
	if entries, _ := os.ReadDir(dir); len(entries) == 0 {
		t.Fatalf("expected cached layout in %s", dir)
	}

	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("cache not cleared, %d entries left", len(entries))
	}
}

func TestCacheClearMissingDir(t *testing.T) {
	setupEnv(t)
	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Errorf("cache clear on empty cache: %v", err)
	}
}

func TestNewKeyerScopesRedis(t *testing.T) {
	cfg := config.Default()
	opts := cache.LayoutKeyOpts{Width: 800, Height: 800}

	if key := newKeyer(cfg).LayoutKey("abc", opts); strings.HasPrefix(key, redisKeyPrefix) {
		t.Errorf("file cache key %q should not be prefixed", key)
	}
	cfg.Cache.Backend = config.CacheRedis
	if key := newKeyer(cfg).LayoutKey("abc", opts); !strings.HasPrefix(key, redisKeyPrefix) {
		t.Errorf("redis key %q should start with %q", key, redisKeyPrefix)
	}
}
