package file

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/slidevault-labs/slidevault-cli/internal/core/ports/driven"
	"github.com/slidevault-labs/slidevault-cli/internal/logger"
)

// Watcher reloads a config store when its backing file changes on disk.
// Long-running modes (serve, mcp) use it so a token added with
// "slidevault auth set-token" is picked up without a restart.
type Watcher struct {
	store   driven.ConfigStore
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the store's backing file.
// The parent directory is watched rather than the file itself because
// editors and atomic writers replace the file via rename.
func NewWatcher(store driven.ConfigStore) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fw.Add(filepath.Dir(store.Path())); err != nil {
		fw.Close()
		return nil, err
	}

	return &Watcher{
		store:   store,
		watcher: fw,
	}, nil
}

// Start processes filesystem events until the context is cancelled.
// Reload failures are logged and watching continues; a transient
// half-written file should not kill the serve loop.
func (w *Watcher) Start(ctx context.Context) {
	target := w.store.Path()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Name != target {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if err := w.store.Reload(); err != nil {
				logger.Warn("config reload failed: %v", err)
				continue
			}
			logger.Debug("config reloaded from %s", target)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher error: %v", err)
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
