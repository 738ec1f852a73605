package scene

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/aquarium/internal/logger"
)

// ManifestWatcher signals when a manifest file is written, created or
// replaced. Editors that save through a rename are covered by watching the
// parent directory.
type ManifestWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
}

// WatchManifest starts watching path.
func WatchManifest(path string) (*ManifestWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	mw := &ManifestWatcher{
		path:    abs,
		watcher: w,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go mw.run()
	return mw, nil
}

func (mw *ManifestWatcher) run() {
	log := logger.Named("scene")
	for {
		select {
		case event, ok := <-mw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != mw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("manifest changed", zap.String("path", mw.path), zap.Stringer("op", event.Op))
			// Coalesce bursts of events into one pending signal.
			select {
			case mw.changed <- struct{}{}:
			default:
			}
		case err, ok := <-mw.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("manifest watcher error", zap.Error(err))
		case <-mw.done:
			return
		}
	}
}

// Changed delivers one value per burst of changes.
func (mw *ManifestWatcher) Changed() <-chan struct{} {
	return mw.changed
}

// Path returns the watched file.
func (mw *ManifestWatcher) Path() string {
	return mw.path
}

// Close stops watching.
func (mw *ManifestWatcher) Close() error {
	close(mw.done)
	return mw.watcher.Close()
}
