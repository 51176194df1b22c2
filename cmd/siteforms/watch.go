package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

// watch renders once and then again after every settled burst of changes
// under paths, until ctx is done. Reload and render failures are logged and
// the previous output stays in place.
func (a *app) watch(ctx context.Context, paths []string, renderOnce func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
	if err := renderOnce(ctx); err != nil {
		return err
	}
	a.logger.Info("watching for changes", zap.Strings("paths", paths))

	debounce := a.debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			a.logger.Debug("change detected", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			settle = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watcher error", zap.Error(err))

		case <-settle:
			settle = nil
			if err := a.buildOrchestrator(); err != nil {
				a.logger.Error("reload failed", zap.Error(err))
				continue
			}
			if err := renderOnce(ctx); err != nil {
				a.logger.Error("render failed", zap.Error(err))
			}
		}
	}
}
