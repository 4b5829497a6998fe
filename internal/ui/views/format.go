package views

import (
	"fmt"

	"clockdeck/internal/core/alarm"
	"clockdeck/internal/core/elapsed"
	"clockdeck/internal/core/stopwatch"
)

// RingsIn is the countdown caption on an alarm card.
func RingsIn(status alarm.Status) string {
	if status.State == alarm.StateRinging || status.InWindow {
		return "Ringing..."
	}
	return fmt.Sprintf("Rings in %d hours, %d minutes", status.HoursLeft, status.MinutesLeft)
}

// LapRow renders one lap-table row. index is the position in the
// newest-first list and count the list length.
type LapRow struct {
	Number string
	Badge  string
	Diff   string
	Total  string
}

// FormatLap builds the row for laps[index].
func FormatLap(laps []stopwatch.Lap, index int) LapRow {
	lap := laps[index]
	row := LapRow{
		Number: fmt.Sprintf("%d", len(laps)-index),
		Diff:   elapsed.Format(lap.Diff).String(),
		Total:  elapsed.Format(lap.TS).String(),
	}
	switch {
	case lap.Fastest:
		row.Badge = "Fastest"
	case lap.Slowest:
		row.Badge = "Slowest"
	}
	return row
}

// Digits splits ticks into the large clock face and the centisecond suffix.
func Digits(ticks int64) (clock, fraction string) {
	value := elapsed.Format(ticks)
	return value.Clock(), "." + value.Centiseconds
}
