//go:build !linux

package shaderwatch

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// New watches the directories holding paths, since editors often replace
// files instead of writing them in place.
func New(paths ...string) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not start fsnotify watcher: %w", err)
	}

	w, err := newWatcher(paths)
	if err != nil {
		_ = watcher.Close()
		return nil, err
	}
	w.close = watcher.Close

	dirs := make(map[string]bool)
	for p := range w.paths {
		dirs[filepath.Dir(p)] = true
	}
	for d := range dirs {
		err = watcher.Add(d)
		if err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("could not watch %s: %w", d, err)
		}
	}

	go func() {
		for {
			select {
			case <-w.done:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !w.paths[filepath.Clean(ev.Name)] {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					w.notify(ev.Name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn(fmt.Sprintf("fsnotify error: %s", err), slog.String("module", "shaderwatch"))
			}
		}
	}()
	return w, nil
}
