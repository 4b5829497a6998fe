package preferences

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"clockdeck/internal/core/model"
)

var pageTitles = map[Page]string{
	PageStopwatch: "Stopwatch",
	PageTimers:    "Timers",
	PageAlarms:    "Alarms",
}

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	preview       func(model.Chime, float64)
	notifications *widget.Check
	muted         *widget.Check
	launchAtLogin *widget.Check
	startHidden   *widget.Check
	volume        *widget.Slider
	volumeLabel   *widget.Label
	startPage     *widget.Select
	chime         *widget.Select
	snooze        *widget.Select
	previewButton *widget.Button
}

// New creates a preferences window. preview plays a chime at the slider
// volume and may be nil.
func New(app fyne.App, settings Settings, onSave func(Settings), preview func(model.Chime, float64)) *Window {
	window := app.NewWindow("ClockDeck Settings")

	prefs := &Window{
		window:        window,
		settings:      settings,
		onSave:        onSave,
		preview:       preview,
		notifications: widget.NewCheck("Show notifications", nil),
		muted:         widget.NewCheck("Mute chimes", nil),
		launchAtLogin: widget.NewCheck("Launch at login", nil),
		startHidden:   widget.NewCheck("Start hidden in the tray", nil),
		volume:        widget.NewSlider(0.05, 1),
		volumeLabel:   widget.NewLabel(""),
		startPage:     widget.NewSelect(pageOptions(), nil),
		chime:         widget.NewSelect(model.ChimeTitles(), nil),
		snooze:        widget.NewSelect(model.SnoozeTitles(), nil),
	}
	prefs.volume.Step = 0.05
	prefs.volume.OnChanged = func(value float64) {
		prefs.volumeLabel.SetText(fmt.Sprintf("%d%%", int(value*100+0.5)))
	}

	prefs.previewButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		if prefs.preview == nil {
			return
		}
		if chime, ok := model.ChimeByTitle(prefs.chime.Selected); ok {
			prefs.preview(chime, prefs.volume.Value)
		}
	})

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.notifications,
		prefs.launchAtLogin,
		prefs.startHidden,
		container.NewBorder(nil, nil, widget.NewLabel("Start page"), nil, prefs.startPage),
		widget.NewLabelWithStyle("Alarms", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Default chime"), prefs.previewButton, prefs.chime),
		container.NewBorder(nil, nil, widget.NewLabel("Default snooze"), nil, prefs.snooze),
		prefs.muted,
		container.NewBorder(nil, nil, widget.NewLabel("Volume"), prefs.volumeLabel, prefs.volume),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 440))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.notifications.SetChecked(settings.NotificationsEnabled)
	prefs.muted.SetChecked(settings.Muted)
	prefs.launchAtLogin.SetChecked(settings.LaunchAtLogin)
	prefs.startHidden.SetChecked(settings.StartHidden)
	prefs.volume.SetValue(settings.ChimeVolume)
	prefs.startPage.SetSelected(pageTitles[settings.StartPage])
	prefs.chime.SetSelected(settings.DefaultChime().Title)
	prefs.snooze.SetSelected(settings.DefaultSnooze().Title)
}

func (prefs *Window) handleSave() {
	prefs.settings = prefs.collect()
	if prefs.onSave != nil {
		prefs.onSave(prefs.settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) collect() Settings {
	settings := prefs.settings
	settings.NotificationsEnabled = prefs.notifications.Checked
	settings.Muted = prefs.muted.Checked
	settings.LaunchAtLogin = prefs.launchAtLogin.Checked
	settings.StartHidden = prefs.startHidden.Checked
	settings.ChimeVolume = prefs.volume.Value
	if page, ok := pageByTitle(prefs.startPage.Selected); ok {
		settings.StartPage = page
	}
	if chime, ok := model.ChimeByTitle(prefs.chime.Selected); ok {
		settings.DefaultChimeID = chime.ID
	}
	if snooze, ok := model.SnoozeByTitle(prefs.snooze.Selected); ok {
		settings.DefaultSnoozeID = snooze.ID
	}
	return settings
}

func pageOptions() []string {
	options := make([]string, 0, len(Pages))
	for _, page := range Pages {
		options = append(options, pageTitles[page])
	}
	return options
}

func pageByTitle(title string) (Page, bool) {
	for page, candidate := range pageTitles {
		if candidate == title {
			return page, true
		}
	}
	return "", false
}
