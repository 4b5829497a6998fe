package views

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"clockdeck/internal/app"
	"clockdeck/internal/core/countdown"
	"clockdeck/internal/ui/animation"
	"clockdeck/internal/ui/state"
)

// TimersView is the timers tab: one card per stored timer.
type TimersView struct {
	parent    fyne.Window
	store     app.Store
	maximized *state.Maximized
	shake     time.Duration
	logger    *zap.Logger

	cards   map[*countdown.Countdown]*timerCard
	list    *fyne.Container
	empty   *widget.Label
	content fyne.CanvasObject
}

// NewTimersView builds the tab and follows registry changes.
func NewTimersView(parent fyne.Window, store app.Store, registry *app.TimerRegistry, maximized *state.Maximized, shake time.Duration, logger *zap.Logger) *TimersView {
	view := &TimersView{
		parent:    parent,
		store:     store,
		maximized: maximized,
		shake:     shake,
		logger:    logger,
		cards:     make(map[*countdown.Countdown]*timerCard),
		list:      container.NewVBox(),
		empty:     widget.NewLabel("No timers yet."),
	}

	add := widget.NewButtonWithIcon("Add timer", theme.ContentAddIcon(), func() {
		showTimerDialog(parent, store, app.NewTimerDraft(), logger, nil)
	})
	view.content = container.NewBorder(container.NewHBox(add), nil, nil, nil,
		container.NewVScroll(container.NewVBox(view.empty, view.list)))

	registry.OnChange(func(engines []*countdown.Countdown) {
		fyne.Do(func() { view.render(engines) })
	})
	return view
}

// Content returns the tab body.
func (view *TimersView) Content() fyne.CanvasObject {
	return view.content
}

// Close stops every card.
func (view *TimersView) Close() {
	for engine, card := range view.cards {
		card.close()
		delete(view.cards, engine)
	}
}

func (view *TimersView) render(engines []*countdown.Countdown) {
	alive := make(map[*countdown.Countdown]bool, len(engines))
	objects := make([]fyne.CanvasObject, 0, len(engines))
	for _, engine := range engines {
		alive[engine] = true
		card, ok := view.cards[engine]
		if !ok {
			card = newTimerCard(view, engine)
			view.cards[engine] = card
		}
		objects = append(objects, card.content)
	}
	for engine, card := range view.cards {
		if !alive[engine] {
			card.close()
			delete(view.cards, engine)
		}
	}

	view.list.Objects = objects
	view.list.Refresh()
	if len(engines) == 0 {
		view.empty.Show()
	} else {
		view.empty.Hide()
	}
}

type timerCard struct {
	engine   *countdown.Countdown
	name     *widget.Label
	face     *canvas.Text
	progress *widget.ProgressBar
	toggle   *widget.Button
	reset    *widget.Button
	shaker   *animation.Engine
	content  fyne.CanvasObject
	cancel   context.CancelFunc
}

func newTimerCard(view *TimersView, engine *countdown.Countdown) *timerCard {
	definition := engine.Definition()
	clock, _ := Digits(engine.Remaining())
	face := newDigits(clock, 32)

	card := &timerCard{
		engine:   engine,
		name:     widget.NewLabelWithStyle(definition.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		face:     face,
		progress: widget.NewProgressBar(),
	}
	card.progress.TextFormatter = func() string { return "" }
	card.progress.SetValue(engine.Fraction())

	card.toggle = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), engine.Toggle)
	card.reset = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), engine.Reset)
	edit := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
		showTimerDialog(view.parent, view.store, app.EditTimerDraft(engine.Definition()), view.logger, nil)
	})
	focus := widget.NewButtonWithIcon("", theme.ViewFullScreenIcon(), func() {
		view.maximized.Toggle(state.Focus{Kind: state.FocusTimer, ID: engine.Definition().ID})
	})

	body := widget.NewCard("", "", container.NewVBox(
		container.NewBorder(nil, nil, nil, container.NewHBox(edit, focus), card.name),
		face,
		card.progress,
		container.NewCenter(container.NewHBox(card.toggle, card.reset)),
	))
	box, content := newShakeBox(body, theme.Padding())
	card.content = content
	card.shaker = animation.New(func(offset float32) {
		fyne.Do(func() {
			box.apply(offset)
			content.Refresh()
		})
	})
	card.applyState(engine.State())

	ctx, cancel := context.WithCancel(context.Background())
	card.cancel = cancel
	events := engine.Subscribe(64)
	go card.follow(ctx, events, view.shake)
	return card
}

func (card *timerCard) follow(ctx context.Context, events <-chan countdown.Event, shake time.Duration) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Type == countdown.EventExpired {
				card.shaker.Start(ctx, animation.DefaultShake(shake))
			}
			fyne.Do(func() { card.apply(event) })
		}
	}
}

func (card *timerCard) apply(event countdown.Event) {
	definition := card.engine.Definition()
	card.name.SetText(definition.Name)
	clock, _ := Digits(event.Remaining)
	setText(card.face, clock)
	if event.Duration > 0 {
		card.progress.SetValue(float64(event.Remaining) / float64(event.Duration))
	}
	card.applyState(event.State)
}

func (card *timerCard) applyState(current countdown.State) {
	if current == countdown.StateRunning {
		card.toggle.SetIcon(theme.MediaPauseIcon())
	} else {
		card.toggle.SetIcon(theme.MediaPlayIcon())
	}
	if card.engine.Started() {
		card.reset.Enable()
	} else {
		card.reset.Disable()
	}
}

func (card *timerCard) close() {
	card.cancel()
	card.shaker.Stop()
}
