package chart

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/marcus/chartfit/internal/debounce"
)

// DefaultReloadDelay is how long a series file must be quiet before it is
// reloaded.
const DefaultReloadDelay = 100 * time.Millisecond

// SeriesUpdate is the result of reloading a watched series file.
type SeriesUpdate struct {
	Series Series
	Err    error
}

// SeriesWatcher reloads a series file when it changes on disk.
type SeriesWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	deb     *debounce.Debouncer
	logger  *slog.Logger

	updates chan SeriesUpdate
	done    chan struct{}
	once    sync.Once
}

// WatchSeries starts watching path. The parent directory is watched so
// editors that save by rename are still seen. A zero delay means
// DefaultReloadDelay; a nil af uses real timers.
func WatchSeries(path string, delay time.Duration, af debounce.AfterFunc, logger *slog.Logger) (*SeriesWatcher, error) {
	if delay <= 0 {
		delay = DefaultReloadDelay
	}
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	w := &SeriesWatcher{
		path:    path,
		watcher: watcher,
		deb:     debounce.NewWithScheduler(delay, af),
		logger:  logger.With("component", "series-watcher"),
		updates: make(chan SeriesUpdate, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Updates delivers one SeriesUpdate per settled burst of changes. It is
// never closed; stop listening after Close.
func (w *SeriesWatcher) Updates() <-chan SeriesUpdate {
	return w.updates
}

// Done is closed by Close.
func (w *SeriesWatcher) Done() <-chan struct{} {
	return w.done
}

func (w *SeriesWatcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			// Remove and rename are followed by a create when an editor
			// replaces the file.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.deb.Trigger(w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue watching
			w.logger.Warn("watch series file", "err", err)

		case <-w.done:
			return
		}
	}
}

func (w *SeriesWatcher) reload() {
	s, err := LoadSeries(w.path)
	if err != nil {
		w.logger.Warn("reload series", "path", w.path, "err", err)
	}
	select {
	case w.updates <- SeriesUpdate{Series: s, Err: err}:
	case <-w.done:
	}
}

// Close stops watching. It is safe to call more than once.
func (w *SeriesWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.deb.Cancel()
		err = w.watcher.Close()
	})
	return err
}
