package shaderwatch

import (
	"fmt"
	"path/filepath"

	"github.com/jhenstridge/go-inotify"
)

const watchMask = inotify.IN_CLOSE_WRITE | inotify.IN_MOVED_TO | inotify.IN_CREATE

// New watches the directories holding paths, since editors often replace
// files instead of writing them in place. A watch on the file itself would
// die with the replaced inode.
func New(paths ...string) (*Watcher, error) {
	watcher, err := inotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not start inotify watcher: %w", err)
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
		_, err = watcher.AddWatch(d, watchMask)
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
			case ev, ok := <-watcher.Event:
				if !ok {
					return
				}
				if ev.Mask&watchMask == 0 {
					continue
				}
				if ev.Watch == nil || ev.Name == "" {
					continue
				}
				path := filepath.Join(ev.Watch.Path, ev.Name)
				if w.paths[path] {
					w.notify(path)
				}
			}
		}
	}()
	return w, nil
}
