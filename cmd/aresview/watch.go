// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watcher reports changes to a single file.
// Editors often replace files instead of writing them,
// so the parent directory is watched and events are
// filtered by name.
type watcher struct {
	w       *fsnotify.Watcher
	path    string
	changed chan struct{}
}

func newWatcher(path string) (*watcher, error) {
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &watcher{w: fw, path: path, changed: make(chan struct{}, 1)}
	go w.run()
	return w, nil
}

func (w *watcher) run() {
	for {
		select {
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("file changed", "path", ev.Name, "op", ev.Op)
			// A pending notification is enough.
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			slog.Error("file watcher error", "err", err)
		}
	}
}

// Changed reports whether the file changed since the
// last call. It does not block.
func (w *watcher) Changed() bool {
	select {
	case <-w.changed:
		return true
	default:
		return false
	}
}

func (w *watcher) Close() error { return w.w.Close() }
