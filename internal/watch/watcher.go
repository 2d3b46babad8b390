// Package watch rebuilds the web target when Go sources change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golife/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// RebuildFunc is invoked once per settled batch of changes.
type RebuildFunc func(ctx context.Context) error

// Watcher watches a source tree for .go changes and calls a RebuildFunc
// after edits have been quiet for the debounce period.
type Watcher struct {
	mu        sync.RWMutex
	watcher   *fsnotify.Watcher
	root      string
	skip      map[string]bool
	rebuild   RebuildFunc
	debounce  time.Duration
	pending   map[string]time.Time
	stopCh    chan struct{}
	doneCh    chan struct{}
	running   bool
	closeOnce sync.Once

	stats Stats
}

// Stats tracks watcher activity.
type Stats struct {
	Events        int
	Rebuilds      int
	Failures      int
	LastEventPath string
	LastRebuild   time.Time
}

// New creates a Watcher over root. Directories named in skip (relative to
// root) are never watched, typically the build output directories.
func New(root string, debounce time.Duration, rebuild RebuildFunc, skip ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	w := &Watcher{
		watcher:  fw,
		root:     root,
		skip:     make(map[string]bool),
		rebuild:  rebuild,
		debounce: debounce,
		pending:  make(map[string]time.Time),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	for _, s := range skip {
		if s == "" {
			continue
		}
		if !filepath.IsAbs(s) {
			s = filepath.Join(root, s)
		}
		w.skip[filepath.Clean(s)] = true
	}
	return w, nil
}

// Start adds every source directory under root and begins processing
// events in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addTree(w.root); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	logging.Watch("watching %d directories under %s", len(w.watcher.WatchList()), w.root)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit. It is safe
// to call more than once, and without Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		close(w.stopCh)
		<-w.doneCh
	}

	w.closeOnce.Do(func() {
		if err := w.watcher.Close(); err != nil {
			logging.WatchError("closing watcher: %v", err)
		}
		logging.WatchDebug("watcher stopped")
	})
}

// Stats returns a snapshot of watcher activity.
func (w *Watcher) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.stats
}

// Dirs returns the watched directories.
func (w *Watcher) Dirs() []string {
	return w.watcher.WatchList()
}

func (w *Watcher) skipDir(path string) bool {
	if w.skip[filepath.Clean(path)] {
		return true
	}
	if path == w.root {
		return false
	}
	name := filepath.Base(path)
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata" || name == "vendor"
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.skipDir(path) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			logging.WatchError("watch %s: %v", path, err)
		}
		return nil
	})
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.debounce / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.WatchError("watcher error: %v", err)
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.skipDir(event.Name) {
				if err := w.addTree(event.Name); err != nil {
					logging.WatchError("watch new dir %s: %v", event.Name, err)
				}
			}
			return
		}
	}
	if !isSource(event.Name) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	logging.WatchDebug("%s %s", event.Op, event.Name)
	w.mu.Lock()
	w.stats.Events++
	w.stats.LastEventPath = event.Name
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// isSource reports whether a change to path affects the web build.
func isSource(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return strings.HasSuffix(base, ".go") || base == "go.mod" || base == "go.sum"
}

// flush rebuilds once all pending changes have been quiet for the debounce
// period.
func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	now := time.Now()
	var changed []string
	for path, at := range w.pending {
		if now.Sub(at) < w.debounce {
			w.mu.Unlock()
			return
		}
		changed = append(changed, path)
	}
	w.pending = make(map[string]time.Time)
	w.mu.Unlock()

	logging.Watch("%d file(s) changed, rebuilding", len(changed))
	err := w.rebuild(ctx)

	w.mu.Lock()
	w.stats.Rebuilds++
	w.stats.LastRebuild = time.Now()
	if err != nil {
		w.stats.Failures++
	}
	w.mu.Unlock()

	if err != nil {
		logging.WatchError("rebuild failed: %v", err)
		return
	}
	logging.Watch("rebuild complete")
}
