// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"neocogi.org/gpu"
)

// WatchConfig calls fn with the reloaded config whenever the file at
// path is written or replaced, until ctx is done. Files that fail to
// load are logged and skipped. The directory of path is watched
// because editors often save by renaming a new file over the old.
func WatchConfig(ctx context.Context, path string, fn func(Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("app: watch config: %w", err)
	}
	defer w.Close()
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("app: watch config: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(path)
			if err != nil {
				gpu.Logger().Warn("app: config not reloaded", "path", path, "err", err)
				continue
			}
			gpu.Logger().Info("app: config reloaded", "path", path)
			fn(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			gpu.Logger().Error("app: config watcher", "err", err)
		}
	}
}
