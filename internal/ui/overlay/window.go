// Package overlay shows one clock in large digits while the shared
// maximized state is set.
package overlay

import (
	"context"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"clockdeck/internal/ui/state"
)

// Reading is what the focus window displays for a focus target.
type Reading struct {
	Title    string
	Clock    string
	Fraction string
}

// Reader resolves the current reading for focus. ok is false when the
// target no longer exists.
type Reader func(focus state.Focus) (reading Reading, ok bool)

const refreshInterval = 33 * time.Millisecond

// Window is the maximized focus view.
type Window struct {
	window    fyne.Window
	maximized *state.Maximized
	read      Reader
	title     *canvas.Text
	clock     *canvas.Text
	fraction  *canvas.Text
	cancelCtx context.CancelFunc
	cancelSub func()
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the focus window and binds it to maximized.
func New(app fyne.App, maximized *state.Maximized, read Reader) *Window {
	window := app.NewWindow("ClockDeck")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 18, G: 18, B: 20, A: 255})

	title := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 28
	title.Alignment = fyne.TextAlignCenter

	clock := canvas.NewText("00:00:00", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	clock.TextSize = 140

	fraction := canvas.NewText("", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	fraction.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	fraction.TextSize = 64

	restore := widget.NewButtonWithIcon("Restore", theme.ViewRestoreIcon(), func() {
		maximized.Toggle(state.Focus{})
	})

	face := container.NewCenter(container.NewVBox(
		title,
		container.NewHBox(clock, fraction),
		container.NewCenter(restore),
	))
	window.SetContent(container.NewStack(background, face))

	focusWindow := &Window{
		window:    window,
		maximized: maximized,
		read:      read,
		title:     title,
		clock:     clock,
		fraction:  fraction,
	}
	window.SetCloseIntercept(func() {
		if value, _ := maximized.Value(); value {
			maximized.Toggle(state.Focus{})
			return
		}
		focusWindow.hide()
	})
	focusWindow.cancelSub = maximized.Subscribe(func(value bool, focus state.Focus) {
		fyne.Do(func() {
			if value {
				focusWindow.show(focus)
				return
			}
			focusWindow.hide()
		})
	})
	return focusWindow
}

// Close unbinds the window from the maximized state and stops refreshing.
func (focusWindow *Window) Close() {
	focusWindow.cancelSub()
	focusWindow.stopRefresh()
	focusWindow.window.Close()
}

func (focusWindow *Window) show(focus state.Focus) {
	focusWindow.stopRefresh()
	if !focusWindow.render(focus) {
		focusWindow.maximized.Toggle(state.Focus{})
		return
	}
	focusWindow.window.SetFullScreen(true)
	focusWindow.window.Show()
	focusWindow.window.RequestFocus()

	ctx, cancel := context.WithCancel(context.Background())
	focusWindow.cancelCtx = cancel
	go focusWindow.refresh(ctx, focus)
}

func (focusWindow *Window) hide() {
	focusWindow.stopRefresh()
	focusWindow.window.SetFullScreen(false)
	focusWindow.window.Hide()
}

func (focusWindow *Window) refresh(ctx context.Context, focus state.Focus) {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fyne.Do(func() {
				if ctx.Err() != nil {
					return
				}
				if !focusWindow.render(focus) {
					focusWindow.maximized.Toggle(state.Focus{})
				}
			})
		}
	}
}

func (focusWindow *Window) render(focus state.Focus) bool {
	reading, ok := focusWindow.read(focus)
	if !ok {
		return false
	}
	update(focusWindow.title, reading.Title)
	update(focusWindow.clock, reading.Clock)
	update(focusWindow.fraction, reading.Fraction)
	return true
}

func (focusWindow *Window) stopRefresh() {
	if focusWindow.cancelCtx != nil {
		focusWindow.cancelCtx()
		focusWindow.cancelCtx = nil
	}
}

func update(text *canvas.Text, value string) {
	if text.Text == value {
		return
	}
	text.Text = value
	text.Refresh()
}
