package manifest

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change is delivered when the watched manifest is rewritten. Exactly one of
// Manifest and Err is set.
type Change struct {
	Manifest *Manifest
	Err      error
}

// Watcher reloads a manifest file when it changes on disk. The parent
// directory is watched so editors that replace the file atomically are seen.
type Watcher struct {
	Path    string
	Changes <-chan Change // Read-only external channel

	changes  chan Change
	done     chan struct{}
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher creates a watcher for the manifest at path.
func NewWatcher(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, err
	}

	ch := make(chan Change, 4)
	return &Watcher{
		Path:     abs,
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		watcher:  fw,
		debounce: 100 * time.Millisecond,
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		w.watcher.Close()
		close(w.done)
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and waits for the loop to exit before closing
// Changes.
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case now := <-ticker.C:
			if pending.IsZero() || now.Sub(pending) < w.debounce {
				continue
			}
			pending = time.Time{}
			w.emit()

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next write re-synchronizes.
		}
	}
}

func (w *Watcher) emit() {
	m, err := Load(w.Path)
	change := Change{Manifest: m, Err: err}
	select {
	case w.changes <- change:
	default:
		// Drop the oldest queued change so the latest file contents win.
		select {
		case <-w.changes:
		default:
		}
		w.changes <- change
	}
}
