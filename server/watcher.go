package server

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/tmpl/log"
)

// defaultDebounce is how long the watcher waits for writes to settle before
// reloading.
const defaultDebounce = 100 * time.Millisecond

// watcher reloads a store when one of its files changes.
type watcher struct {
	fs       *fsnotify.Watcher
	store    *store
	files    map[string]struct{}
	debounce time.Duration
	logger   log.Logger
}

// newWatcher watches the directories holding the store's files, since
// editors often replace a file rather than write it in place.
func newWatcher(s *store, debounce time.Duration, logger log.Logger) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ErrWatch.Wrap(err)
	}

	w := &watcher{
		fs:       fsw,
		store:    s,
		files:    make(map[string]struct{}, len(s.files)),
		debounce: debounce,
		logger:   logger,
	}

	dirs := make(map[string]struct{})

	for _, name := range s.files {
		abs, err := filepath.Abs(name)
		if err != nil {
			fsw.Close()

			return nil, ErrWatch.With(slog.String("file", name)).Wrap(err)
		}

		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()

			return nil, ErrWatch.With(slog.String("dir", dir)).Wrap(err)
		}
	}

	return w, nil
}

// run processes file events until ctx is done, then closes the watcher.
func (w *watcher) run(ctx context.Context) {
	defer w.fs.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()

			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}

			if !w.relevant(event) {
				continue
			}

			w.logger.DebugContext(ctx, "context file changed",
				slog.String("file", event.Name),
				slog.String("op", event.Op.String()))

			timer.Reset(w.debounce)

		case <-timer.C:
			if err := w.store.reload(ctx); err != nil {
				w.logger.WarnContext(ctx, "context reload failed, keeping previous",
					slog.Any("error", err))
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}

			w.logger.WarnContext(ctx, "watcher error", slog.Any("error", err))
		}
	}
}

func (w *watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	_, ok := w.files[abs]

	return ok
}
