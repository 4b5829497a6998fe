package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"clockdeck/internal/app"
	"clockdeck/internal/audio"
	"clockdeck/internal/core/alarm"
	"clockdeck/internal/core/model"
	"clockdeck/internal/core/stopwatch"
	"clockdeck/internal/platform"
	"clockdeck/internal/storage"
	"clockdeck/internal/ui/overlay"
	"clockdeck/internal/ui/preferences"
	"clockdeck/internal/ui/state"
	"clockdeck/internal/ui/tray"
	"clockdeck/internal/ui/views"
	"clockdeck/resources"
)

const trayRefresh = 15 * time.Second

func runDesktop(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.logger

	settings, settingsPath, err := opts.loadSettings()
	if err != nil {
		return err
	}
	if opts.background {
		settings.StartHidden = true
	}

	guard, err := platform.AcquireSingleInstance(filepath.Dir(settingsPath), appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info("another instance is already running")
		return nil
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		if err := guard.Release(); err != nil {
			logger.Warn("release instance lock", zap.Error(err))
		}
	}()

	dbPath, err := opts.databasePath(settings)
	if err != nil {
		return err
	}
	store, err := storage.Open(dbPath, logger.Named("store"))
	if err != nil {
		return err
	}
	defer store.Close()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo(resources.AppLogo))

	notifier := platform.NewNotifier(fyneApp, logger.Named("notify"))
	if err := notifier.Request(settings.NotificationsEnabled); err != nil {
		logger.Debug("notifications unavailable", zap.Error(err))
	}

	player := audio.NewPlayer(audio.Options{
		Volume: settings.ChimeVolume,
		Muted:  settings.Muted,
		Logger: logger.Named("audio"),
	})
	defer player.Stop()

	config := model.DefaultEngineConfig()
	watch := stopwatch.New(config)
	defer watch.Close()

	timers := app.NewTimerRegistry(config, notifier, logger.Named("timers"))
	defer timers.Close()
	if err := timers.Attach(store); err != nil {
		return err
	}
	alarms := app.NewAlarmRegistry(config, alarm.Options{Player: player}, notifier, logger.Named("alarms"))
	defer alarms.Close()
	if err := alarms.Attach(store); err != nil {
		return err
	}

	maximized := state.NewMaximized()
	window := fyneApp.NewWindow(appName)
	current := settings
	preview := func(chime model.Chime) {
		if err := player.Preview(chime); err != nil {
			logger.Debug("chime preview", zap.String("chime", chime.Title), zap.Error(err))
		}
	}

	tabs := views.NewTabs(
		views.NewStopwatchView(watch, maximized),
		views.NewTimersView(window, store, timers, maximized, config.ShakeDuration, logger.Named("ui")),
		views.NewAlarmsView(window, store, alarms, preview, func() preferences.Settings { return current }, config.ShakeDuration, logger.Named("ui")),
	)
	defer tabs.Close()
	tabs.Select(settings.StartPage)
	window.SetContent(tabs.Content())
	window.Resize(fyne.NewSize(520, 640))
	window.SetMaster()

	focusWindow := overlay.New(fyneApp, maximized, views.FocusReader(watch, timers))
	defer focusWindow.Close()

	loginItem := newLoginItem(logger)
	apply := func(updated preferences.Settings) {
		current = updated
		player.SetVolume(updated.ChimeVolume)
		player.SetMuted(updated.Muted || opts.mute)
		notifier.SetEnabled(updated.NotificationsEnabled)
		if loginItem != nil {
			if err := loginItem.Sync(updated.LaunchAtLogin); err != nil {
				logger.Warn("launch at login", zap.Error(err))
			}
		}
	}
	apply(settings)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		apply(updated)
		if err := storage.SaveSettings(settingsPath, updated); err != nil {
			logger.Error("save settings", zap.Error(err))
		}
	}, func(chime model.Chime, volume float64) {
		player.SetVolume(volume)
		preview(chime)
		player.SetVolume(current.ChimeVolume)
	})

	showWindow := func() {
		window.Show()
		window.RequestFocus()
	}

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:            showWindow,
			OnToggleStopwatch: watch.Toggle,
			OnPreferences:     prefsWindow.Show,
			OnQuit:            fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(resources.MustLogo(resources.TrayLogo))
		window.SetCloseIntercept(window.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	settingsWatcher, err := storage.NewSettingsWatcher(settingsPath, 0, func(updated preferences.Settings) {
		fyne.Do(func() {
			apply(updated)
			prefsWindow.UpdateSettings(updated)
		})
	}, logger.Named("settings"))
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(runCtx)
	group.Go(func() error {
		if err := settingsWatcher.Start(groupCtx); err != nil {
			logger.Warn("settings reload disabled", zap.Error(err))
			settingsWatcher.Stop()
			return nil
		}
		<-groupCtx.Done()
		settingsWatcher.Stop()
		return nil
	})
	if trayManager != nil {
		group.Go(func() error {
			followStopwatch(groupCtx, watch, trayManager)
			return nil
		})
		group.Go(func() error {
			followAlarms(groupCtx, alarms, trayManager)
			return nil
		})
	}

	if !settings.StartHidden || trayManager == nil {
		window.Show()
	}
	fyneApp.Run()

	cancel()
	return group.Wait()
}

func newLoginItem(logger *zap.Logger) *platform.LoginItem {
	execPath, err := os.Executable()
	if err != nil {
		logger.Warn("resolve executable", zap.Error(err))
		return nil
	}
	item, err := platform.NewLoginItem(appName, execPath, "--background")
	if err != nil {
		logger.Warn("launch at login unavailable", zap.Error(err))
		return nil
	}
	return item
}

func followStopwatch(ctx context.Context, watch *stopwatch.Stopwatch, trayManager *tray.Manager) {
	events := watch.Subscribe(4)
	running := false
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			// Every event carries the current state.
			if next := event.State == stopwatch.StateRunning; next != running {
				running = next
				fyne.Do(func() { trayManager.SetStopwatchRunning(next) })
			}
		}
	}
}

func followAlarms(ctx context.Context, alarms *app.AlarmRegistry, trayManager *tray.Manager) {
	ticker := time.NewTicker(trayRefresh)
	defer ticker.Stop()
	for {
		if ctx.Err() != nil {
			return
		}
		label := nextAlarmLabel(alarms.Upcoming())
		fyne.Do(func() { trayManager.SetNextAlarm(label) })
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func nextAlarmLabel(upcoming []*alarm.Engine) string {
	if len(upcoming) == 0 {
		return ""
	}
	next := upcoming[0]
	return fmt.Sprintf("%s at %s", next.Definition().Title, next.Status().FireAt.Format("Mon 03:04 PM"))
}
