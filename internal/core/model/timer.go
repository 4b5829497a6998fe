package model

import "strings"

// Timer limits for the duration steppers.
const (
	MaxHours   = 99
	MaxMinutes = 59
	MaxSeconds = 59
)

// Timer is a stored countdown definition. Duration is in ticks.
type Timer struct {
	ID       string
	Name     string
	Duration int64
}

// Valid reports whether the timer may be persisted.
func (timer Timer) Valid() bool {
	return strings.TrimSpace(timer.Name) != "" && timer.Duration > 0
}

// TimerPatch holds the fields an update replaces; nil fields are left untouched.
type TimerPatch struct {
	Name     *string
	Duration *int64
}
