package playlists

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

const reloadDebounce = 500 * time.Millisecond

// Watcher monitors the XSPF directory and invokes a reload callback when
// playlist files are added, changed, or removed. Editors write playlists
// in several steps, so events are debounced before firing.
type Watcher struct {
	watcher *fsnotify.Watcher
	log     *logrus.Entry
	done    chan struct{}
}

// WatchXSPFDir starts watching dir for playlist file changes. onChange is
// called from the watcher goroutine after the debounce window.
func WatchXSPFDir(dir string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher: fw,
		log:     logrus.WithField("component", "playlist-watcher"),
		done:    make(chan struct{}),
	}
	go w.run(onChange)

	w.log.WithField("dir", dir).Info("watching playlist directory")
	return w, nil
}

func (w *Watcher) run(onChange func()) {
	var debounce *time.Timer

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isPlaylistEvent(event) {
				continue
			}
			w.log.WithField("file", event.Name).Debug("playlist change detected")
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, onChange)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.WithError(err).Error("playlist watcher error")

		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func isPlaylistEvent(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	if !strings.EqualFold(filepath.Ext(name), ".xspf") {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
