package preferences

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clockdeck/internal/core/model"
)

func TestWindowCollectsEdits(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved []Settings
	prefs := New(app, DefaultSettings(), func(settings Settings) {
		saved = append(saved, settings)
	}, nil)

	prefs.muted.SetChecked(true)
	prefs.volume.SetValue(0.5)
	prefs.startPage.SetSelected("Alarms")
	prefs.chime.SetSelected("Echo")
	prefs.snooze.SetSelected("1 Hour")
	prefs.handleSave()

	require.Len(t, saved, 1)
	got := saved[0]
	assert.True(t, got.Muted)
	assert.True(t, got.NotificationsEnabled)
	assert.InDelta(t, 0.5, got.ChimeVolume, 1e-9)
	assert.Equal(t, PageAlarms, got.StartPage)
	assert.Equal(t, "9", got.DefaultChimeID)
	assert.Equal(t, "6", got.DefaultSnoozeID)
}

func TestWindowPreviewUsesSliderVolume(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var played []model.Chime
	var volumes []float64
	prefs := New(app, DefaultSettings(), nil, func(chime model.Chime, volume float64) {
		played = append(played, chime)
		volumes = append(volumes, volume)
	})
	prefs.volume.SetValue(0.3)
	prefs.chime.SetSelected("Tap")

	test.Tap(prefs.previewButton)

	require.Len(t, played, 1)
	assert.Equal(t, "4", played[0].ID)
	assert.InDelta(t, 0.3, volumes[0], 1e-9)
}

func TestPageTitlesRoundTrip(t *testing.T) {
	for _, page := range Pages {
		got, ok := pageByTitle(pageTitles[page])
		assert.True(t, ok)
		assert.Equal(t, page, got)
	}
	_, ok := pageByTitle("Weather")
	assert.False(t, ok)
}
