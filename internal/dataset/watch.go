package dataset

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch flags the table stale when its backing file is rewritten or
// replaced. The watch is on the parent directory because dataset exports
// typically replace the file via rename, which drops a watch set on the
// file itself. Close the returned watcher to stop.
func Watch(table *Table, logger *zap.Logger) (*fsnotify.Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	target := filepath.Clean(table.Path())
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					table.MarkStale()
					logger.Warn("dataset changed on disk; restart to reload",
						zap.String("path", target),
						zap.String("op", ev.Op.String()))
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("dataset watcher error", zap.Error(err))
			}
		}
	}()

	return w, nil
}
