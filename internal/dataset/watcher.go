// file: internal/dataset/watcher.go
// version: 1.0.0
// guid: 6d7e8f9a-0b1c-2d3e-4f5a-6b7c8d9e0f1a

package dataset

import (
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the cached dataset file and reloads a fresh Snapshot
// when it changes. Reloaded snapshots are published through the onLoad
// callback; consumers swap them in atomically on their side.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	onLoad  func(*Snapshot)
	stop    chan struct{}
}

// NewWatcher creates a watcher for the given dataset file path. onLoad
// is called with each freshly loaded snapshot, including failed loads
// that produce an empty one.
func NewWatcher(path string, onLoad func(*Snapshot)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		watcher: fsw,
		onLoad:  onLoad,
		stop:    make(chan struct{}),
	}

	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	// Debounce rapid write bursts so a download in progress doesn't
	// trigger a reload per chunk.
	var pending *time.Timer
	reload := func() {
		snap, err := Load(w.path)
		if err != nil {
			log.Printf("[WARN] Dataset reload failed: %v", err)
		}
		if w.onLoad != nil {
			w.onLoad(snap)
		}
	}

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				log.Printf("[INFO] Dataset file changed: %s (op: %s)", w.path, event.Op)
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(500*time.Millisecond, reload)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[WARN] Dataset watcher error: %v", err)
		case <-w.stop:
			if pending != nil {
				pending.Stop()
			}
			return
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.stop)
	return w.watcher.Close()
}
