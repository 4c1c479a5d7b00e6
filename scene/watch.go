package scene

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce swallows the burst of events editors fire for one save.
const watchDebounce = 100 * time.Millisecond

// Watcher follows a single scene file and coalesces its change events into
// at most one pending signal, so the game can rebuild the scene between
// frames during development.
type Watcher struct {
	fs   *fsnotify.Watcher
	path string

	// Changed holds at most one pending change; an undelivered signal
	// already means "reload", so further changes fold into it.
	Changed chan struct{}
	Errors  chan error

	closeCh chan struct{}
	once    sync.Once
}

// WatchScene watches the scene file at path. The parent directory is
// watched rather than the file itself, so editors that save by replacing
// the file (rename plus create) keep being seen.
func WatchScene(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("scene: watch %s: %w", path, err)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("scene: watch %s: %w", path, err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("scene: watch %s: %w", path, err)
	}

	w := &Watcher{
		fs:      fs,
		path:    abs,
		Changed: make(chan struct{}, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. The Changed and Errors channels stay open so a
// concurrent send never races the close; after Close nothing new arrives on
// them.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	var last time.Time
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			now := time.Now()
			if now.Sub(last) < watchDebounce {
				continue
			}
			last = now
			select {
			case w.Changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
