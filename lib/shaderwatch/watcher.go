// Package shaderwatch reports when shader source files on disk change.
package shaderwatch

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Watcher coalesces change notifications for a set of files into Reload.
// Consumers poll Reload from the render thread; a pending reload is never
// queued twice.
type Watcher struct {
	Reload chan struct{}

	paths map[string]bool
	done  chan struct{}
	close func() error
}

func newWatcher(paths []string) (*Watcher, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("cannot watch shader source: %w", err)
		}
	}
	w := &Watcher{
		Reload: make(chan struct{}, 1),
		paths:  make(map[string]bool),
		done:   make(chan struct{}),
	}
	for _, p := range paths {
		w.paths[filepath.Clean(p)] = true
	}
	return w, nil
}

func (w *Watcher) notify(path string) {
	slog.Debug(fmt.Sprintf("shader source %s changed", path), slog.String("module", "shaderwatch"))
	select {
	case w.Reload <- struct{}{}:
	default:
	}
}

// Pending reports whether a reload was requested since the last call.
func (w *Watcher) Pending() bool {
	select {
	case <-w.Reload:
		return true
	default:
		return false
	}
}

func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.close()
}
