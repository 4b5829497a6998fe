package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"clockdeck/internal/app"
	"clockdeck/internal/core/model"
	"clockdeck/internal/core/stopwatch"
	"clockdeck/internal/ui/overlay"
	"clockdeck/internal/ui/state"
)

func TestFocusReader(t *testing.T) {
	config := model.EngineConfig{TickInterval: time.Hour, PollInterval: time.Hour, ShakeDuration: time.Hour}
	watch := stopwatch.New(config)
	defer watch.Close()
	registry := app.NewTimerRegistry(config, nil, nil)
	defer registry.Close()
	registry.Sync([]model.Timer{{ID: "t1", Name: "Tea", Duration: 18000}})

	watch.Start()
	for range 250 {
		watch.Tick()
	}
	read := FocusReader(watch, registry)

	got, ok := read(state.Focus{Kind: state.FocusStopwatch})
	assert.True(t, ok)
	assert.Equal(t, overlay.Reading{Title: "Stopwatch", Clock: "00:00:02", Fraction: ".50"}, got)

	got, ok = read(state.Focus{Kind: state.FocusTimer, ID: "t1"})
	assert.True(t, ok)
	assert.Equal(t, overlay.Reading{Title: "Tea", Clock: "00:03:00"}, got)

	_, ok = read(state.Focus{Kind: state.FocusTimer, ID: "gone"})
	assert.False(t, ok)
	_, ok = read(state.Focus{})
	assert.False(t, ok)
}
