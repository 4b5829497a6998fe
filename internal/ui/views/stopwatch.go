package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"clockdeck/internal/core/stopwatch"
	"clockdeck/internal/ui/state"
)

// StopwatchView is the stopwatch tab.
type StopwatchView struct {
	engine    *stopwatch.Stopwatch
	maximized *state.Maximized

	toggle   *widget.Button
	lap      *widget.Button
	laps     []stopwatch.Lap
	lapList  *widget.List
	lapTitle *widget.Label
	content  fyne.CanvasObject
	done     chan struct{}
}

// NewStopwatchView builds the tab and starts following engine events.
func NewStopwatchView(engine *stopwatch.Stopwatch, maximized *state.Maximized) *StopwatchView {
	view := &StopwatchView{
		engine:    engine,
		maximized: maximized,
		done:      make(chan struct{}),
	}

	clock, fraction := Digits(engine.Elapsed())
	face := newDigits(clock, 56)
	cents := newDigits(fraction, 28)
	cents.Color = accentColor

	view.toggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), engine.Toggle)
	view.toggle.Importance = widget.HighImportance
	view.lap = widget.NewButtonWithIcon("Lap", theme.ContentAddIcon(), func() { engine.RecordLap() })
	reset := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), engine.Reset)
	focus := widget.NewButtonWithIcon("", theme.ViewFullScreenIcon(), func() {
		maximized.Toggle(state.Focus{Kind: state.FocusStopwatch})
	})

	view.lapTitle = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	view.lapList = widget.NewList(
		func() int { return len(view.laps) },
		func() fyne.CanvasObject {
			return container.NewGridWithColumns(4,
				widget.NewLabel("00"),
				widget.NewLabel("Fastest"),
				widget.NewLabel("00:00:00.00"),
				widget.NewLabel("00:00:00.00"),
			)
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id >= len(view.laps) {
				return
			}
			row := FormatLap(view.laps, id)
			cells := item.(*fyne.Container).Objects
			cells[0].(*widget.Label).SetText(row.Number)
			cells[1].(*widget.Label).SetText(row.Badge)
			cells[2].(*widget.Label).SetText(row.Diff)
			cells[3].(*widget.Label).SetText(row.Total)
		},
	)

	header := container.NewVBox(
		container.NewCenter(container.NewHBox(face, cents)),
		container.NewCenter(container.NewHBox(view.toggle, view.lap, reset, focus)),
		view.lapTitle,
	)
	view.content = container.NewBorder(header, nil, nil, nil, view.lapList)
	view.applyState(engine.State())
	view.setLaps(engine.Laps())

	events := engine.Subscribe(64)
	go view.follow(events, func(ticks int64) {
		clock, fraction := Digits(ticks)
		setText(face, clock)
		setText(cents, fraction)
	})
	return view
}

// Content returns the tab body.
func (view *StopwatchView) Content() fyne.CanvasObject {
	return view.content
}

// Close stops following engine events.
func (view *StopwatchView) Close() {
	select {
	case <-view.done:
	default:
		close(view.done)
	}
}

func (view *StopwatchView) follow(events <-chan stopwatch.Event, render func(int64)) {
	for {
		select {
		case <-view.done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fyne.Do(func() {
				render(event.Elapsed)
				switch event.Type {
				case stopwatch.EventStateChange:
					view.applyState(event.State)
					if event.State == stopwatch.StateIdle {
						view.setLaps(nil)
					}
				case stopwatch.EventLap:
					view.setLaps(event.Laps)
				}
			})
		}
	}
}

func (view *StopwatchView) applyState(current stopwatch.State) {
	if current == stopwatch.StateRunning {
		view.toggle.SetText("Pause")
		view.toggle.SetIcon(theme.MediaPauseIcon())
		view.lap.Enable()
		return
	}
	view.toggle.SetText("Start")
	view.toggle.SetIcon(theme.MediaPlayIcon())
	view.lap.Disable()
}

func (view *StopwatchView) setLaps(laps []stopwatch.Lap) {
	view.laps = laps
	if len(laps) == 0 {
		view.lapTitle.SetText("")
	} else {
		view.lapTitle.SetText("Laps")
	}
	view.lapList.Refresh()
}
