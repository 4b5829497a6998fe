package model

import "time"

// Chime is a selectable alarm sound. Media names a file in the embedded
// chime set.
type Chime struct {
	ID    string
	Title string
	Media string
}

// SnoozeOption is a selectable snooze interval.
type SnoozeOption struct {
	ID    string
	Title string
	Value time.Duration
}

// Chimes is the built-in chime catalog.
var Chimes = []Chime{
	{ID: "1", Title: "Chimes", Media: "chimes.wav"},
	{ID: "2", Title: "Xylophone", Media: "xylophone.wav"},
	{ID: "3", Title: "Chords", Media: "chords.wav"},
	{ID: "4", Title: "Tap", Media: "tap.wav"},
	{ID: "5", Title: "Jingle", Media: "jingle.wav"},
	{ID: "6", Title: "Transition", Media: "transition.wav"},
	{ID: "7", Title: "Descending", Media: "descending.wav"},
	{ID: "8", Title: "Bounce", Media: "bounce.wav"},
	{ID: "9", Title: "Echo", Media: "echo.wav"},
	{ID: "10", Title: "Ascending", Media: "ascending.wav"},
}

// SnoozeOptions is the built-in snooze catalog.
var SnoozeOptions = []SnoozeOption{
	{ID: "0", Title: "Disabled", Value: 0},
	{ID: "1", Title: "5 Minutes", Value: 5 * time.Minute},
	{ID: "2", Title: "10 Minutes", Value: 10 * time.Minute},
	{ID: "3", Title: "15 Minutes", Value: 15 * time.Minute},
	{ID: "4", Title: "30 Minutes", Value: 30 * time.Minute},
	{ID: "5", Title: "45 Minutes", Value: 45 * time.Minute},
	{ID: "6", Title: "1 Hour", Value: time.Hour},
}

// ChimeByID returns the catalog chime, falling back to the first entry.
func ChimeByID(id string) Chime {
	for _, chime := range Chimes {
		if chime.ID == id {
			return chime
		}
	}
	return Chimes[0]
}

// ChimeByTitle looks a chime up by its display title.
func ChimeByTitle(title string) (Chime, bool) {
	for _, chime := range Chimes {
		if chime.Title == title {
			return chime, true
		}
	}
	return Chime{}, false
}

// SnoozeByID returns the catalog option, falling back to "Disabled".
func SnoozeByID(id string) SnoozeOption {
	for _, option := range SnoozeOptions {
		if option.ID == id {
			return option
		}
	}
	return SnoozeOptions[0]
}

// SnoozeByTitle looks a snooze option up by its display title.
func SnoozeByTitle(title string) (SnoozeOption, bool) {
	for _, option := range SnoozeOptions {
		if option.Title == title {
			return option, true
		}
	}
	return SnoozeOption{}, false
}

// ChimeTitles returns catalog titles in order.
func ChimeTitles() []string {
	titles := make([]string, len(Chimes))
	for index, chime := range Chimes {
		titles[index] = chime.Title
	}
	return titles
}

// SnoozeTitles returns catalog titles in order.
func SnoozeTitles() []string {
	titles := make([]string, len(SnoozeOptions))
	for index, option := range SnoozeOptions {
		titles[index] = option.Title
	}
	return titles
}
