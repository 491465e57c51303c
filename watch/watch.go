// Package watch re-runs a callback whenever a GW file changes on disk.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/gwkit/errors"
	"github.com/teranos/gwkit/logger"
)

// Func is called once on start and after every debounced change.
// An error is logged and watching continues.
type Func func(ctx context.Context) error

// Watcher debounces write and create events for one file.
type Watcher struct {
	path     string
	debounce time.Duration
	fn       Func
	log      *zap.SugaredLogger
	watcher  *fsnotify.Watcher
}

// New watches path. The parent directory is watched so that editors which
// replace the file by renaming keep being followed.
func New(path string, debounce time.Duration, fn Func) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", path)
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("watched file %s", path)
		}
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "failed to watch %s", filepath.Dir(abs))
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		fn:       fn,
		log:      logger.ChildLogger(logger.ComponentLogger("watch"), logger.FieldFile, path),
		watcher:  fw,
	}, nil
}

// Run calls fn, then again after each burst of changes, until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	w.call(ctx)

	// stopped until the first relevant event
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debugw("Watcher detected change", "op", event.Op.String())
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("Watcher error", logger.FieldError, err)

		case <-timer.C:
			w.call(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == w.path
}

func (w *Watcher) call(ctx context.Context) {
	start := time.Now()
	if err := w.fn(ctx); err != nil {
		w.log.Errorw("Watch callback failed", logger.FieldError, err)
		return
	}
	w.log.Debugw("Watch callback done", logger.FieldDurationMS, time.Since(start).Milliseconds())
}
