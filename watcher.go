package polyglot

import (
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher clears the loader cache when translation files change on disk, so
// edited bundles are re-fetched on next demand. Development use only; the
// production cache lives for the process lifetime.
type Watcher struct {
	loader   *Loader
	fsw      *fsnotify.Watcher
	onReload func()
	done     chan struct{}
}

// NewWatcher watches dir (recursively) for translation file changes.
// onReload, if non-nil, runs after each cache clear.
func NewWatcher(loader *Loader, dir string, onReload func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fsw.Add(path)
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		loader:   loader,
		fsw:      fsw,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			slog.Info("translation files changed, clearing cache", "file", ev.Name)
			w.loader.ClearCache()
			if w.onReload != nil {
				w.onReload()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("translation watcher error", "error", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
