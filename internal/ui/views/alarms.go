package views

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"clockdeck/internal/app"
	"clockdeck/internal/core/alarm"
	"clockdeck/internal/core/elapsed"
	"clockdeck/internal/core/model"
	"clockdeck/internal/ui/animation"
	"clockdeck/internal/ui/preferences"
)

// AlarmsView is the alarms tab: one card per stored alarm.
type AlarmsView struct {
	parent   fyne.Window
	store    app.Store
	preview  func(model.Chime)
	settings func() preferences.Settings
	shake    time.Duration
	logger   *zap.Logger

	cards   map[*alarm.Engine]*alarmCard
	list    *fyne.Container
	empty   *widget.Label
	content fyne.CanvasObject
}

// NewAlarmsView builds the tab and follows registry changes.
func NewAlarmsView(parent fyne.Window, store app.Store, registry *app.AlarmRegistry, preview func(model.Chime), settings func() preferences.Settings, shake time.Duration, logger *zap.Logger) *AlarmsView {
	view := &AlarmsView{
		parent:   parent,
		store:    store,
		preview:  preview,
		settings: settings,
		shake:    shake,
		logger:   logger,
		cards:    make(map[*alarm.Engine]*alarmCard),
		list:     container.NewVBox(),
		empty:    widget.NewLabel("No alarms yet."),
	}

	add := widget.NewButtonWithIcon("Add alarm", theme.ContentAddIcon(), func() {
		current := view.settings()
		draft := app.NewAlarmDraft(current.DefaultChime(), current.DefaultSnooze())
		showAlarmDialog(parent, store, draft, preview, logger, nil)
	})
	view.content = container.NewBorder(container.NewHBox(add), nil, nil, nil,
		container.NewVScroll(container.NewVBox(view.empty, view.list)))

	registry.OnChange(func(engines []*alarm.Engine) {
		fyne.Do(func() { view.render(engines) })
	})
	return view
}

// Content returns the tab body.
func (view *AlarmsView) Content() fyne.CanvasObject {
	return view.content
}

// Close stops every card.
func (view *AlarmsView) Close() {
	for engine, card := range view.cards {
		card.close()
		delete(view.cards, engine)
	}
}

func (view *AlarmsView) render(engines []*alarm.Engine) {
	alive := make(map[*alarm.Engine]bool, len(engines))
	objects := make([]fyne.CanvasObject, 0, len(engines))
	for _, engine := range engines {
		alive[engine] = true
		card, ok := view.cards[engine]
		if !ok {
			card = newAlarmCard(view, engine)
			view.cards[engine] = card
		}
		card.refresh(engine.Status())
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

func (view *AlarmsView) edit(engine *alarm.Engine) {
	engine.Suspend()
	draft := app.EditAlarmDraft(engine.Definition())
	showAlarmDialog(view.parent, view.store, draft, view.preview, view.logger, engine.Resume)
}

type alarmCard struct {
	engine  *alarm.Engine
	endAt   *canvas.Text
	phase   *canvas.Text
	left    *widget.Label
	title   *widget.Label
	days    []*canvas.Text
	active  *widget.Check
	shaker  *animation.Engine
	content fyne.CanvasObject
	cancel  context.CancelFunc
	syncing bool
}

func newAlarmCard(view *AlarmsView, engine *alarm.Engine) *alarmCard {
	card := &alarmCard{
		engine: engine,
		endAt:  newDigits("", 32),
		phase:  newDigits("", 16),
		left:   widget.NewLabel(""),
		title:  widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	}
	card.endAt.Alignment = fyne.TextAlignLeading
	card.phase.Alignment = fyne.TextAlignLeading

	card.active = widget.NewCheck("Active", func(bool) {
		if card.syncing {
			return
		}
		id := engine.Definition().ID
		if err := app.ToggleActive(view.store, id); err != nil {
			view.logger.Error("toggle alarm", zap.String("alarm", id), zap.Error(err))
			dialog.ShowError(err, view.parent)
		}
	})
	edit := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() { view.edit(engine) })

	dayRow := container.NewHBox()
	for _, day := range model.Days {
		text := canvas.NewText(string(day), mutedColor)
		text.TextSize = 12
		card.days = append(card.days, text)
		dayRow.Add(text)
	}

	body := widget.NewCard("", "", container.NewVBox(
		container.NewBorder(nil, nil, container.NewHBox(card.endAt, card.phase), container.NewHBox(edit, card.active)),
		container.NewHBox(widget.NewIcon(theme.HistoryIcon()), card.left),
		card.title,
		dayRow,
	))
	box, content := newShakeBox(body, theme.Padding())
	card.content = content
	card.shaker = animation.New(func(offset float32) {
		fyne.Do(func() {
			box.apply(offset)
			content.Refresh()
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	card.cancel = cancel
	events := engine.Subscribe(32)
	go card.follow(ctx, events, view.shake)
	return card
}

func (card *alarmCard) follow(ctx context.Context, events <-chan alarm.Event, shake time.Duration) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Type == alarm.EventRinging && !card.shaker.Running() {
				card.shaker.Start(ctx, animation.DefaultShake(shake))
			}
			fyne.Do(func() { card.refresh(card.engine.Status()) })
		}
	}
}

func (card *alarmCard) refresh(status alarm.Status) {
	definition := card.engine.Definition()
	setText(card.endAt, elapsed.PadZero(definition.EndAt.Hour)+":"+elapsed.PadZero(definition.EndAt.Minute))
	setText(card.phase, string(definition.EndAt.Phase))
	card.left.SetText(RingsIn(status))
	card.title.SetText(definition.Title)

	for index, day := range model.Days {
		text := card.days[index]
		if definition.RepeatsOn(day) {
			text.Color = accentColor
			text.TextStyle = fyne.TextStyle{Bold: true}
		} else {
			text.Color = mutedColor
			text.TextStyle = fyne.TextStyle{}
		}
		text.Refresh()
	}

	card.syncing = true
	card.active.SetChecked(definition.IsActive)
	card.syncing = false
}

func (card *alarmCard) close() {
	card.cancel()
	card.shaker.Stop()
}
