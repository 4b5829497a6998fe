// Package views builds the main window tabs.
package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"

	"clockdeck/internal/ui/preferences"
)

// Tabs holds the three pages of the main window.
type Tabs struct {
	tabs      *container.AppTabs
	stopwatch *StopwatchView
	timers    *TimersView
	alarms    *AlarmsView
}

// NewTabs arranges the pages in preferences.Pages order.
func NewTabs(stopwatch *StopwatchView, timers *TimersView, alarms *AlarmsView) *Tabs {
	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Stopwatch", theme.HistoryIcon(), stopwatch.Content()),
		container.NewTabItemWithIcon("Timers", theme.MediaPlayIcon(), timers.Content()),
		container.NewTabItemWithIcon("Alarms", theme.InfoIcon(), alarms.Content()),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	return &Tabs{tabs: tabs, stopwatch: stopwatch, timers: timers, alarms: alarms}
}

// Content returns the tab container.
func (tabs *Tabs) Content() fyne.CanvasObject {
	return tabs.tabs
}

// Select shows page.
func (tabs *Tabs) Select(page preferences.Page) {
	for index, candidate := range preferences.Pages {
		if candidate == page {
			tabs.tabs.SelectIndex(index)
			return
		}
	}
}

// Close stops every page from following its engines.
func (tabs *Tabs) Close() {
	tabs.stopwatch.Close()
	tabs.timers.Close()
	tabs.alarms.Close()
}
