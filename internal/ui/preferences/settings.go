package preferences

import "clockdeck/internal/core/model"

// Page identifies a main-window tab.
type Page string

const (
	PageStopwatch Page = "stopwatch"
	PageTimers    Page = "timers"
	PageAlarms    Page = "alarms"
)

// Pages lists the tabs in display order.
var Pages = []Page{PageStopwatch, PageTimers, PageAlarms}

// Valid reports whether the page names a known tab.
func (page Page) Valid() bool {
	for _, candidate := range Pages {
		if candidate == page {
			return true
		}
	}
	return false
}

// Settings defines editable user preferences.
type Settings struct {
	NotificationsEnabled bool
	ChimeVolume          float64
	Muted                bool
	LaunchAtLogin        bool
	StartHidden          bool
	StartPage            Page
	DefaultChimeID       string
	DefaultSnoozeID      string
	DatabasePath         string
}

// DefaultSettings returns default settings for ClockDeck.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: true,
		ChimeVolume:          0.8,
		StartPage:            PageStopwatch,
		DefaultChimeID:       model.Chimes[0].ID,
		DefaultSnoozeID:      model.SnoozeOptions[0].ID,
	}
}

// DefaultChime resolves the configured default chime against the catalog.
func (settings Settings) DefaultChime() model.Chime {
	return model.ChimeByID(settings.DefaultChimeID)
}

// DefaultSnooze resolves the configured default snooze option.
func (settings Settings) DefaultSnooze() model.SnoozeOption {
	return model.SnoozeByID(settings.DefaultSnoozeID)
}
