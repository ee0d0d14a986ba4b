package cargo

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/seek/internal/core/ports/driven"
	"github.com/custodia-labs/seek/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.EnvironmentWatcher = (*Watcher)(nil)

// DefaultWatchDebounce coalesces the burst of events an editor save or a
// cargo install produces.
const DefaultWatchDebounce = 250 * time.Millisecond

// Watcher watches the directories holding the environment files and calls
// back once per burst of changes.
type Watcher struct {
	paths    func() []string
	debounce time.Duration
}

// NewWatcher creates a watcher. paths is consulted at start and after every
// change, so files that appear in a refreshed environment are picked up.
func NewWatcher(paths func() []string, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	return &Watcher{paths: paths, debounce: debounce}
}

// Watch blocks until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	dirs := make(map[string]bool)
	targets := make(map[string]bool)
	sync := func() {
		clear(targets)
		for _, p := range w.paths() {
			p = filepath.Clean(p)
			targets[p] = true
			dir := filepath.Dir(p)
			if dirs[dir] {
				continue
			}
			if err := fsw.Add(dir); err != nil {
				logger.Debug("not watching %s: %v", dir, err)
				continue
			}
			dirs[dir] = true
		}
	}
	sync()
	logger.Debug("watching %d directories for environment changes", len(dirs))

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event, targets) {
				continue
			}
			logger.Debug("environment change: %s", event)
			if timer == nil {
				timer = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error: %v", err)

		case <-fire:
			onChange()
			sync()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event, targets map[string]bool) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	return targets[name] || strings.EqualFold(filepath.Base(name), manifestName)
}
