package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"clockdeck/internal/ui/preferences"
)

const defaultReloadDebounce = 250 * time.Millisecond

// SettingsWatcher reloads the settings file when it changes on disk.
// The parent directory is watched so editors that replace the file by
// rename are still observed.
type SettingsWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(preferences.Settings)
	logger   *zap.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewSettingsWatcher creates a watcher for the settings file at path.
func NewSettingsWatcher(path string, debounce time.Duration, onChange func(preferences.Settings), logger *zap.Logger) (*SettingsWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = defaultReloadDebounce
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	return &SettingsWatcher{
		watcher:  watcher,
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It returns immediately; events are handled on a
// background goroutine until ctx is done or Stop is called.
func (settingsWatcher *SettingsWatcher) Start(ctx context.Context) error {
	settingsWatcher.mu.Lock()
	defer settingsWatcher.mu.Unlock()
	if settingsWatcher.running {
		return nil
	}

	dir := filepath.Dir(settingsWatcher.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := settingsWatcher.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch settings directory: %w", err)
	}

	settingsWatcher.running = true
	go settingsWatcher.run(ctx)
	settingsWatcher.logger.Debug("watching settings", zap.String("path", settingsWatcher.path))
	return nil
}

// Stop ends watching and waits for the event loop to exit.
func (settingsWatcher *SettingsWatcher) Stop() {
	settingsWatcher.mu.Lock()
	if !settingsWatcher.running {
		settingsWatcher.mu.Unlock()
		settingsWatcher.watcher.Close()
		return
	}
	settingsWatcher.running = false
	settingsWatcher.mu.Unlock()

	close(settingsWatcher.stopCh)
	<-settingsWatcher.doneCh

	if err := settingsWatcher.watcher.Close(); err != nil {
		settingsWatcher.logger.Warn("close settings watcher", zap.Error(err))
	}
}

func (settingsWatcher *SettingsWatcher) run(ctx context.Context) {
	defer close(settingsWatcher.doneCh)

	var reload *time.Timer
	var fire <-chan time.Time
	defer func() {
		if reload != nil {
			reload.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-settingsWatcher.stopCh:
			return
		case event, ok := <-settingsWatcher.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != settingsWatcher.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if reload == nil {
				reload = time.NewTimer(settingsWatcher.debounce)
			} else {
				reload.Reset(settingsWatcher.debounce)
			}
			fire = reload.C
		case err, ok := <-settingsWatcher.watcher.Errors:
			if !ok {
				return
			}
			settingsWatcher.logger.Warn("settings watcher error", zap.Error(err))
		case <-fire:
			fire = nil
			settingsWatcher.apply()
		}
	}
}

func (settingsWatcher *SettingsWatcher) apply() {
	settings, err := LoadSettings(settingsWatcher.path)
	if err != nil {
		settingsWatcher.logger.Warn("reload settings", zap.Error(err))
		return
	}
	settingsWatcher.logger.Info("settings reloaded", zap.String("path", settingsWatcher.path))
	if settingsWatcher.onChange != nil {
		settingsWatcher.onChange(settings)
	}
}
