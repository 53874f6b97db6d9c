package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

type countingStore struct {
	Discard
	reads, writes int
}

func (c *countingStore) OnDatasetRead(context.Context, string, bool, time.Duration) { c.reads++ }
func (c *countingStore) OnDatasetWrite(context.Context, string, int, time.Duration, error) {
	c.writes++
}

func TestInstallKeepsUnsetFamilies(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	s := &countingStore{}
	restore := Install(Hooks{Store: s})

	Store().OnDatasetRead(context.Background(), "platform", true, time.Millisecond)
	Store().OnDatasetWrite(context.Background(), "platform", 8, time.Millisecond, nil)
	if s.reads != 1 || s.writes != 1 {
		t.Errorf("reads=%d writes=%d, want 1 and 1", s.reads, s.writes)
	}
	if _, ok := Pipeline().(Discard); !ok {
		t.Errorf("Pipeline() = %T, want Discard", Pipeline())
	}

	restore()
	if _, ok := Store().(Discard); !ok {
		t.Errorf("after restore Store() = %T, want Discard", Store())
	}
}

func TestInstallNested(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	outer, inner := &countingStore{}, &countingStore{}
	restoreOuter := Install(Hooks{Store: outer})
	restoreInner := Install(Hooks{Store: inner})
	if Store() != inner {
		t.Fatal("inner hooks not installed")
	}
	restoreInner()
	if Store() != outer {
		t.Error("restoring inner should bring back outer")
	}
	restoreOuter()
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	ctx := context.Background()

	h.OnLayoutComplete(ctx, 8, time.Millisecond, nil)
	h.OnCacheHit(ctx, KindArtifact)
	h.OnDatasetWrite(ctx, "platform", 8, time.Millisecond, errors.New("disk full"))
	h.OnResponse(ctx, "GET", "/api/v1/datasets/{name}", 404, time.Millisecond)

	out := buf.String()
	for _, want := range []string{
		"laid out", "placed=8",
		"cache hit", "kind=artifact",
		"WARN", "dataset written", "disk full",
		"status=404",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnCacheMiss(context.Background(), KindLayout)
	h.OnDatasetDelete(context.Background(), "platform", nil)
	if buf.Len() != 0 {
		t.Errorf("successful events should log at debug, got %q", buf.String())
	}
}

func TestBundleCoversAllFamilies(t *testing.T) {
	b := NewLogHooks(log.New(&bytes.Buffer{})).Bundle()
	if b.Pipeline == nil || b.Cache == nil || b.Store == nil || b.HTTP == nil {
		t.Errorf("Bundle() left a family empty: %+v", b)
	}
}
