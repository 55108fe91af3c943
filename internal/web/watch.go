package web

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits after the last change before reloading.
const DefaultDebounce = 500 * time.Millisecond

// FileWatcher interface allows mocking fsnotify
type FileWatcher interface {
	Events() <-chan fsnotify.Event
	Errors() <-chan error
	Add(name string) error
	Close() error
}

// FSNotifyWatcher wraps fsnotify.Watcher
type FSNotifyWatcher struct {
	watcher *fsnotify.Watcher
}

func NewFSNotifyWatcher() (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FSNotifyWatcher{watcher: w}, nil
}

func (w *FSNotifyWatcher) Events() <-chan fsnotify.Event {
	return w.watcher.Events
}

func (w *FSNotifyWatcher) Errors() <-chan error {
	return w.watcher.Errors
}

func (w *FSNotifyWatcher) Add(name string) error {
	return w.watcher.Add(name)
}

func (w *FSNotifyWatcher) Close() error {
	return w.watcher.Close()
}

// factory for creating watcher, allows mocking
var watcherFactory = func() (FileWatcher, error) {
	return NewFSNotifyWatcher()
}

// Watch reloads the dataset whenever path changes, until ctx is cancelled.
// The parent directory is watched because saves replace the file by rename.
func (s *Server) Watch(ctx context.Context, path string, debounce time.Duration) error {
	watcher, err := watcherFactory()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	var mu sync.Mutex
	var timer *time.Timer
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				if err := s.Reload(); err != nil {
					slog.Error("failed to reload dataset", "path", target, "error", err)
					return
				}
				slog.Debug("dataset reloaded", "path", target)
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors():
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}
