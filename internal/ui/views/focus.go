package views

import (
	"clockdeck/internal/app"
	"clockdeck/internal/core/stopwatch"
	"clockdeck/internal/ui/overlay"
	"clockdeck/internal/ui/state"
)

// FocusReader resolves the focus window's reading from the stopwatch or
// the focused timer's engine.
func FocusReader(watch *stopwatch.Stopwatch, timers *app.TimerRegistry) overlay.Reader {
	return func(focus state.Focus) (overlay.Reading, bool) {
		switch focus.Kind {
		case state.FocusStopwatch:
			clock, fraction := Digits(watch.Elapsed())
			return overlay.Reading{Title: "Stopwatch", Clock: clock, Fraction: fraction}, true
		case state.FocusTimer:
			engine, ok := timers.Get(focus.ID)
			if !ok {
				return overlay.Reading{}, false
			}
			clock, _ := Digits(engine.Remaining())
			return overlay.Reading{Title: engine.Definition().Name, Clock: clock}, true
		}
		return overlay.Reading{}, false
	}
}
