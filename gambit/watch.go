package gambit

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports archetype YAML changes under the watched directories,
// debounced so editors that write a file twice don't double-fire.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isArchetypeFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			w.Events <- event.Name
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.Errors <- err
		case <-w.closeCh:
			return
		}
	}
}

func isArchetypeFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Reloader re-reads a data directory into the registry whenever the watcher
// fires, so archetype tuning lands in running battles without a restart.
type Reloader struct {
	reg     *Registry
	dir     string
	watcher *Watcher
}

func NewReloader(reg *Registry, dir string) (*Reloader, error) {
	w, err := NewWatcher(dir)
	if err != nil {
		return nil, err
	}
	return &Reloader{reg: reg, dir: dir, watcher: w}, nil
}

// Run blocks until ctx is cancelled. A failed reload logs and keeps the
// previous definitions active.
func (r *Reloader) Run(ctx context.Context) {
	defer r.watcher.Close()
	slog.Info("watching archetype data", "dir", r.dir)
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			slog.Info("archetype data changed", "path", path)
			if err := r.reg.LoadDir(r.dir); err != nil {
				slog.Error("archetype reload failed, keeping previous definitions", "error", err)
			}
		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("archetype watcher error", "error", err)
		}
	}
}
