// Package elapsed converts tick counts into clock display fields.
//
// A tick is one centisecond. Every countdown and stopwatch counter in
// ClockDeck is an integer number of ticks.
package elapsed

import (
	"fmt"
	"strconv"
	"time"
)

// Tick is the duration of one counter step.
const Tick = 10 * time.Millisecond

const (
	ticksPerSecond = 100
	ticksPerMinute = 60 * ticksPerSecond
	ticksPerHour   = 60 * ticksPerMinute
)

// Elapsed holds zero-padded display fields.
type Elapsed struct {
	Hours        string
	Minutes      string
	Seconds      string
	Centiseconds string
}

// Format splits ticks into display fields. Hours wrap at 60 the same way
// minutes and seconds do, and negative values render as "00".
func Format(ticks int64) Elapsed {
	return Elapsed{
		Hours:        padZero(ticks / ticksPerHour % 60),
		Minutes:      padZero(ticks / ticksPerMinute % 60),
		Seconds:      padZero(ticks / ticksPerSecond % 60),
		Centiseconds: padZero(ticks % ticksPerSecond),
	}
}

// Clock renders hh:mm:ss.
func (value Elapsed) Clock() string {
	return value.Hours + ":" + value.Minutes + ":" + value.Seconds
}

// String renders hh:mm:ss.cc.
func (value Elapsed) String() string {
	return value.Clock() + "." + value.Centiseconds
}

// FromHMS converts form input into ticks.
func FromHMS(hours, minutes, seconds int) int64 {
	millis := int64(hours)*int64(time.Hour/time.Millisecond) +
		int64(minutes)*int64(time.Minute/time.Millisecond) +
		int64(seconds)*int64(time.Second/time.Millisecond)
	return millis / int64(Tick/time.Millisecond)
}

// Split breaks ticks into whole hours, minutes and seconds, the inverse of
// FromHMS for values below 100 hours.
func Split(ticks int64) (hours, minutes, seconds int) {
	if ticks <= 0 {
		return 0, 0, 0
	}
	hours = int(ticks / ticksPerHour)
	minutes = int(ticks / ticksPerMinute % 60)
	seconds = int(ticks / ticksPerSecond % 60)
	return hours, minutes, seconds
}

// ToDuration converts ticks to a time.Duration.
func ToDuration(ticks int64) time.Duration {
	return time.Duration(ticks) * Tick
}

// FromDuration converts a duration to whole ticks, truncating.
func FromDuration(value time.Duration) int64 {
	return int64(value / Tick)
}

// PadZero renders n as at least two digits, clamping non-positive values to "00".
func PadZero(n int) string {
	return padZero(int64(n))
}

func padZero(n int64) string {
	if n <= 0 {
		return "00"
	}
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return fmt.Sprintf("%d", n)
}
