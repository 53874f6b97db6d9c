package cli

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/techradar/internal/config"
	"github.com/matzehuels/techradar/pkg/errors"
	"github.com/matzehuels/techradar/pkg/pipeline"
)

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 200 * time.Millisecond

// watchRender renders src, then again after every change to the file until
// ctx ends. Render errors are reported and watching continues.
func (c *CLI) watchRender(ctx context.Context, cfg *config.Config, src source, opts pipeline.Options, flags renderFlags) error {
	logger := loggerFromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnavailable, err, "start file watcher")
	}
	defer watcher.Close()

	// Editors often replace the file on save, so watch its directory.
	target, err := filepath.Abs(src.path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", src.path)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "watch %s", src.path)
	}

	rerender := func() {
		p := newProgress(logger)
		if err := c.runRender(ctx, cfg, src, opts, flags); err != nil {
			printError("%s", errors.UserMessage(err))
			return
		}
		p.done("Re-rendered " + src.name())
	}

	rerender()
	printInfo("Watching %s for changes (Ctrl+C to stop)", src.path)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watchedChange(event, target) {
				continue
			}
			logger.Debug("input changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			pending = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "err", err)
		case <-pending:
			pending = nil
			rerender()
		}
	}
}

// watchedChange reports whether event modified the file at target.
func watchedChange(event fsnotify.Event, target string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
