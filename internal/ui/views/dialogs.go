package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"clockdeck/internal/app"
	"clockdeck/internal/core/model"
)

// showTimerDialog opens the add/edit timer form. An incomplete form keeps
// the dialog open.
func showTimerDialog(parent fyne.Window, store app.Store, draft app.TimerDraft, logger *zap.Logger, onClosed func()) {
	name := widget.NewEntry()
	name.SetPlaceHolder("Timer name")
	name.SetText(draft.Name)
	name.OnChanged = func(value string) { draft.Name = value }

	_, hours := newStepper("Hours", func() int { return draft.Hours }, draft.StepHours)
	_, minutes := newStepper("Minutes", func() int { return draft.Minutes }, draft.StepMinutes)
	_, seconds := newStepper("Seconds", func() int { return draft.Seconds }, draft.StepSeconds)

	hint := widget.NewLabel("")
	hint.Importance = widget.DangerImportance

	title := "Add timer"
	if draft.ID != "" {
		title = "Edit timer"
	}
	content := container.NewVBox(name, container.NewGridWithColumns(3, hours, minutes, seconds), hint)
	form := dialog.NewCustomWithoutButtons(title, content, parent)

	save := widget.NewButtonWithIcon("Save", theme.ConfirmIcon(), func() {
		saved, err := draft.Save(store)
		if err != nil {
			logger.Error("save timer", zap.Error(err))
			dialog.ShowError(err, parent)
			return
		}
		if !saved {
			hint.SetText("Enter a name and a duration.")
			return
		}
		form.Hide()
	})
	save.Importance = widget.HighImportance
	cancel := widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), form.Hide)
	buttons := []fyne.CanvasObject{cancel, save}

	if draft.ID != "" {
		id := draft.ID
		remove := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
			if err := store.DeleteTimer(id); err != nil {
				logger.Error("delete timer", zap.String("timer", id), zap.Error(err))
				dialog.ShowError(err, parent)
				return
			}
			form.Hide()
		})
		remove.Importance = widget.DangerImportance
		buttons = append([]fyne.CanvasObject{remove}, buttons...)
	}

	form.SetButtons(buttons)
	form.SetOnClosed(func() {
		if onClosed != nil {
			onClosed()
		}
	})
	form.Show()
	parent.Canvas().Focus(name)
}

// showAlarmDialog opens the add/edit alarm form.
func showAlarmDialog(parent fyne.Window, store app.Store, draft app.AlarmDraft, preview func(model.Chime), logger *zap.Logger, onClosed func()) {
	title := widget.NewEntry()
	title.SetPlaceHolder("Alarm name")
	title.SetText(draft.Title)
	title.OnChanged = func(value string) { draft.Title = value }

	_, hour := newStepper("Hour", func() int { return draft.EndAt.Hour }, draft.StepHour)
	_, minute := newStepper("Minute", func() int { return draft.EndAt.Minute }, draft.StepMinute)
	phase := widget.NewButton(string(draft.EndAt.Phase), nil)
	phase.OnTapped = func() {
		draft.TogglePhase()
		phase.SetText(string(draft.EndAt.Phase))
	}

	dayNames := make([]string, len(model.Days))
	for index, day := range model.Days {
		dayNames[index] = string(day)
	}
	days := widget.NewCheckGroup(dayNames, func(selected []string) {
		picked := make(map[string]bool, len(selected))
		for _, name := range selected {
			picked[name] = true
		}
		for _, day := range model.Days {
			if picked[string(day)] != containsDay(draft.RepeatOn, day) {
				draft.ToggleDay(day)
			}
		}
	})
	days.Horizontal = true
	selected := make([]string, 0, len(draft.RepeatOn))
	for _, day := range draft.RepeatOn {
		selected = append(selected, string(day))
	}
	days.SetSelected(selected)

	repeat := widget.NewCheck("Repeat", func(checked bool) { draft.RepeatEnabled = checked })
	repeat.SetChecked(draft.RepeatEnabled)

	chime := widget.NewSelect(model.ChimeTitles(), func(value string) {
		if selectedChime, ok := model.ChimeByTitle(value); ok {
			draft.Chime = selectedChime
		}
	})
	chime.SetSelected(draft.Chime.Title)
	listen := widget.NewButtonWithIcon("", theme.VolumeUpIcon(), func() {
		if preview != nil {
			preview(draft.Chime)
		}
	})

	snooze := widget.NewSelect(model.SnoozeTitles(), func(value string) {
		if option, ok := model.SnoozeByTitle(value); ok {
			draft.Snooze = option
		}
	})
	snooze.SetSelected(draft.Snooze.Title)

	hint := widget.NewLabel("")
	hint.Importance = widget.DangerImportance

	heading := "Add alarm"
	if draft.ID != "" {
		heading = "Edit alarm"
	}
	content := container.NewVBox(
		container.NewGridWithColumns(3, hour, minute, container.NewCenter(phase)),
		title,
		repeat,
		days,
		widget.NewForm(
			widget.NewFormItem("Chime", container.NewBorder(nil, nil, nil, listen, chime)),
			widget.NewFormItem("Snooze", snooze),
		),
		hint,
	)
	form := dialog.NewCustomWithoutButtons(heading, content, parent)

	save := widget.NewButtonWithIcon("Save", theme.ConfirmIcon(), func() {
		saved, err := draft.Save(store)
		if err != nil {
			logger.Error("save alarm", zap.Error(err))
			dialog.ShowError(err, parent)
			return
		}
		if !saved {
			hint.SetText("Enter a name for the alarm.")
			return
		}
		form.Hide()
	})
	save.Importance = widget.HighImportance
	cancel := widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), form.Hide)
	buttons := []fyne.CanvasObject{cancel, save}

	if draft.ID != "" {
		id := draft.ID
		remove := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
			if err := store.DeleteAlarm(id); err != nil {
				logger.Error("delete alarm", zap.String("alarm", id), zap.Error(err))
				dialog.ShowError(err, parent)
				return
			}
			form.Hide()
		})
		remove.Importance = widget.DangerImportance
		buttons = append([]fyne.CanvasObject{remove}, buttons...)
	}

	form.SetButtons(buttons)
	form.SetOnClosed(func() {
		if onClosed != nil {
			onClosed()
		}
	})
	form.Show()
}

func containsDay(days []model.Day, day model.Day) bool {
	for _, candidate := range days {
		if candidate == day {
			return true
		}
	}
	return false
}
