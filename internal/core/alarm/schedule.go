package alarm

import (
	"time"

	"clockdeck/internal/core/model"
)

// NextFire returns the next instant at or after now, exclusive of now, at
// which the daily wall-clock time endAt occurs in now's location.
func NextFire(now time.Time, endAt model.EndAt) time.Time {
	year, month, day := now.Date()
	candidate := time.Date(year, month, day, endAt.Hour24(), endAt.Minute, 0, 0, now.Location())
	if !candidate.After(now) {
		candidate = time.Date(year, month, day+1, endAt.Hour24(), endAt.Minute, 0, 0, now.Location())
	}
	return candidate
}

// Remaining returns whole hours and minutes until fire, measured in whole
// seconds the way the countdown label shows it.
func Remaining(now, fire time.Time) (hours, minutes int) {
	seconds := fire.Unix() - now.Unix()
	if seconds < 0 {
		seconds = 0
	}
	hours = int(seconds / 3600)
	minutes = int(seconds / 60 % 60)
	return hours, minutes
}

// InRingWindow reports whether less than a minute remains until fire.
func InRingWindow(now, fire time.Time) bool {
	hours, minutes := Remaining(now, fire)
	return hours == 0 && minutes == 0
}
