package model

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce collapses the burst of events editors produce for one save.
const debounce = 100 * time.Millisecond

// Change is a reload of the watched model file. Exactly one of Model and Err
// is set; Err carries load and parse failures (the file may be mid-edit or
// removed).
type Change struct {
	File  string
	Model *Model
	Err   error
}

// Watcher monitors a model file for edits using fsnotify and reloads it after
// each change. It watches the parent directory so that editors which save by
// rename-and-replace are still observed.
type Watcher struct {
	File    string
	Changes <-chan Change // Read-only external channel

	changes chan Change // Internal write channel
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the model file at path.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	return &Watcher{
		File:    abs,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching the model file's directory.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.File)); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.File {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= debounce {
				pending = time.Time{}
				w.emit()
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next event retries the load.
		}
	}
}

func (w *Watcher) emit() {
	m, err := Load(w.File)
	w.changes <- Change{File: w.File, Model: m, Err: err}
}
