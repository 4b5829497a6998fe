// Package tray owns the system tray menu.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
)

// MenuSetter installs a tray menu. desktop.App implements it.
type MenuSetter interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow            func()
	OnToggleStopwatch func()
	OnPreferences     func()
	OnQuit            func()
}

// Manager handles system tray state.
type Manager struct {
	app           MenuSetter
	statusItem    *fyne.MenuItem
	stopwatchItem *fyne.MenuItem
	callbacks     Callbacks
	running       bool
	nextAlarm     string
}

// New creates a tray manager with the provided callbacks.
func New(app MenuSetter, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.stopwatchItem = fyne.NewMenuItem("", func() {
		invoke(manager.callbacks.OnToggleStopwatch)
	})

	manager.refreshStatus()
	manager.refreshStopwatch()
	manager.refreshMenu()
	return manager
}

// SetNextAlarm updates the next alarm line. An empty label means no
// active alarm.
func (manager *Manager) SetNextAlarm(label string) {
	if manager.nextAlarm == label {
		return
	}
	manager.nextAlarm = label
	manager.refreshStatus()
	manager.refreshMenu()
}

// SetStopwatchRunning flips the stopwatch item between Start and Pause.
func (manager *Manager) SetStopwatchRunning(running bool) {
	if manager.running == running {
		return
	}
	manager.running = running
	manager.refreshStopwatch()
	manager.refreshMenu()
}

// Menu returns the current menu items for inspection.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu()
}

func (manager *Manager) refreshStatus() {
	if manager.nextAlarm == "" {
		manager.statusItem.Label = "No alarms set"
		return
	}
	manager.statusItem.Label = fmt.Sprintf("Next alarm: %s", manager.nextAlarm)
}

func (manager *Manager) refreshStopwatch() {
	if manager.running {
		manager.stopwatchItem.Label = "Pause stopwatch"
	} else {
		manager.stopwatchItem.Label = "Start stopwatch"
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu())
	}
}

func (manager *Manager) menu() *fyne.Menu {
	return fyne.NewMenu("ClockDeck",
		fyne.NewMenuItem("Show ClockDeck", func() {
			invoke(manager.callbacks.OnShow)
		}),
		manager.statusItem,
		manager.stopwatchItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			invoke(manager.callbacks.OnPreferences)
		}),
		fyne.NewMenuItem("Quit", func() {
			invoke(manager.callbacks.OnQuit)
		}),
	)
}

func invoke(fn func()) {
	if fn != nil {
		fn()
	}
}
