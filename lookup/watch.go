// Shape templates for rendering generic types – nothing more!
// Copyright (C) 2020 Marcus Perlick
package lookup

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Table whenever its shape file changes.
type Watcher struct {
	path  string
	table *Table
	w     *fsnotify.Watcher
}

// NewWatcher starts watching the shape file at path for tbl. The file's
// directory is watched so that files replaced by a rename are noticed.
func NewWatcher(path string, tbl *Table) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("lookup: watch %s: %w", path, err)
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("lookup: watch %s: %w", path, err)
	}
	return &Watcher{path: path, table: tbl, w: w}, nil
}

// Run reloads the table until ctx is done or the watcher is closed. A
// file that fails to load leaves the table unchanged and is reported to
// failed, which may be nil.
func (w *Watcher) Run(ctx context.Context, failed func(error)) {
	report := func(err error) {
		if failed != nil {
			failed(err)
		}
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			tbl, err := LoadFile(w.path)
			if err != nil {
				report(err)
				continue
			}
			w.table.Replace(tbl)
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			report(fmt.Errorf("lookup: watch %s: %w", w.path, err))
		}
	}
}

func (w *Watcher) Close() error { return w.w.Close() }
