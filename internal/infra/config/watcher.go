package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"calcmcp/internal/domain"
	"calcmcp/internal/infra/telemetry"
)

// Watch reloads path after writes settle for debounce and hands every valid
// config to onChange. Invalid edits are logged and skipped. The parent
// directory is watched so editors that replace the file are still seen.
// Watch blocks until ctx is done.
func (l *Loader) Watch(ctx context.Context, path string, debounce time.Duration, onChange func(domain.Config)) error {
	if debounce <= 0 {
		debounce = time.Duration(domain.DefaultConfigReloadDebounceMillis) * time.Millisecond
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.logger.Warn("config watcher error", zap.Error(err))
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				continue
			}
			timer.Reset(debounce)
		case <-timerChan(timer):
			timer = nil
			cfg, err := l.Load(ctx, path)
			if err != nil {
				l.logger.Warn("config reload rejected",
					telemetry.EventField(telemetry.EventConfigInvalid),
					zap.String("path", path),
					zap.Error(err),
				)
				continue
			}
			l.logger.Info("config reloaded",
				telemetry.EventField(telemetry.EventConfigReload),
				zap.String("path", path),
			)
			onChange(cfg)
		}
	}
}

func timerChan(timer *time.Timer) <-chan time.Time {
	if timer == nil {
		return nil
	}
	return timer.C
}
