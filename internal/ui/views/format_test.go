package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clockdeck/internal/core/alarm"
	"clockdeck/internal/core/stopwatch"
)

func TestRingsIn(t *testing.T) {
	assert.Equal(t, "Rings in 3 hours, 7 minutes", RingsIn(alarm.Status{State: alarm.StateArmed, HoursLeft: 3, MinutesLeft: 7}))
	assert.Equal(t, "Ringing...", RingsIn(alarm.Status{State: alarm.StateRinging}))
	assert.Equal(t, "Ringing...", RingsIn(alarm.Status{State: alarm.StateArmed, InWindow: true}))
}

func TestFormatLap(t *testing.T) {
	laps := []stopwatch.Lap{
		{TS: 1250, Diff: 450, Fastest: true},
		{TS: 800, Diff: 500},
		{TS: 300, Diff: 300, Slowest: true},
	}

	assert.Equal(t, LapRow{Number: "3", Badge: "Fastest", Diff: "00:00:04.50", Total: "00:00:12.50"}, FormatLap(laps, 0))
	assert.Equal(t, LapRow{Number: "2", Diff: "00:00:05.00", Total: "00:00:08.00"}, FormatLap(laps, 1))
	assert.Equal(t, "Slowest", FormatLap(laps, 2).Badge)
}

func TestDigits(t *testing.T) {
	clock, fraction := Digits(366199)
	assert.Equal(t, "01:01:01", clock)
	assert.Equal(t, ".99", fraction)
}
