package app

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"clockdeck/internal/core/alarm"
	"clockdeck/internal/core/countdown"
	"clockdeck/internal/core/model"
	"clockdeck/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "clockdeck.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (notifier *recordingNotifier) Notify(title, _ string) bool {
	notifier.mu.Lock()
	notifier.messages = append(notifier.messages, title)
	notifier.mu.Unlock()
	return true
}

func (notifier *recordingNotifier) all() []string {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return append([]string(nil), notifier.messages...)
}

func manualConfig() model.EngineConfig {
	return model.EngineConfig{TickInterval: time.Hour, PollInterval: time.Hour, ShakeDuration: time.Hour}
}

func TestTimerDraftValidation(t *testing.T) {
	store := openStore(t)

	draft := NewTimerDraft()
	draft.Name = "   "
	draft.Minutes = 5
	saved, err := draft.Save(store)
	require.NoError(t, err)
	assert.False(t, saved, "blank name is rejected")

	draft = NewTimerDraft()
	draft.Name = "Tea"
	saved, err = draft.Save(store)
	require.NoError(t, err)
	assert.False(t, saved, "zero duration is rejected")

	draft.StepMinutes(3)
	draft.StepSeconds(-1)
	saved, err = draft.Save(store)
	require.NoError(t, err)
	require.True(t, saved)
	require.NotEmpty(t, draft.ID)

	stored, err := store.GetTimer(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tea", stored.Name)
	assert.Equal(t, int64((3*60+59)*100), stored.Duration)
}

func TestTimerDraftSteppersWrap(t *testing.T) {
	draft := NewTimerDraft()
	draft.StepHours(-1)
	draft.StepMinutes(-1)
	draft.StepSeconds(60)
	assert.Equal(t, model.MaxHours, draft.Hours)
	assert.Equal(t, model.MaxMinutes, draft.Minutes)
	assert.Equal(t, 0, draft.Seconds)

	draft.StepHours(1)
	assert.Equal(t, 0, draft.Hours)
}

func TestTimerDraftEdit(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.AddTimer(model.Timer{ID: "t1", Name: "Laundry", Duration: 541500}))
	stored, err := store.GetTimer("t1")
	require.NoError(t, err)

	draft := EditTimerDraft(stored)
	assert.Equal(t, 1, draft.Hours)
	assert.Equal(t, 30, draft.Minutes)
	assert.Equal(t, 15, draft.Seconds)

	draft.Name = "Dryer"
	draft.StepMinutes(-30)
	saved, err := draft.Save(store)
	require.NoError(t, err)
	require.True(t, saved)

	updated, err := store.GetTimer("t1")
	require.NoError(t, err)
	assert.Equal(t, model.Timer{ID: "t1", Name: "Dryer", Duration: 361500}, updated)
}

func TestAlarmDraftDefaultsAndSave(t *testing.T) {
	store := openStore(t)

	draft := NewAlarmDraft(model.Chimes[0], model.SnoozeOptions[0])
	assert.Equal(t, model.EndAt{Hour: 12, Minute: 0, Phase: model.AM}, draft.EndAt)
	assert.Equal(t, model.Days, draft.RepeatOn)
	assert.True(t, draft.RepeatEnabled)

	saved, err := draft.Save(store)
	require.NoError(t, err)
	assert.False(t, saved, "title is required")

	draft.Title = "Gym"
	draft.IsActive = false
	draft.StepHour(-6)
	draft.StepMinute(-15)
	draft.TogglePhase()
	draft.ToggleDay(model.Sunday)
	draft.ToggleDay(model.Saturday)
	saved, err = draft.Save(store)
	require.NoError(t, err)
	require.True(t, saved)

	stored, err := store.GetAlarm(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EndAt{Hour: 6, Minute: 45, Phase: model.PM}, stored.EndAt)
	assert.Equal(t, []model.Day{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday}, stored.RepeatOn)
	assert.True(t, stored.IsActive, "new alarms are stored active")

	edit := EditAlarmDraft(stored)
	edit.ToggleDay(model.Sunday)
	edit.Chime = model.ChimeByID("5")
	saved, err = edit.Save(store)
	require.NoError(t, err)
	require.True(t, saved)

	stored, err = store.GetAlarm(draft.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Sunday, stored.RepeatOn[0])
	assert.Equal(t, "Jingle", stored.Chime.Title)
}

func TestToggleActive(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.AddAlarm(model.Alarm{
		ID:       "a1",
		Title:    "Gym",
		EndAt:    model.EndAt{Hour: 6, Minute: 0, Phase: model.AM},
		IsActive: true,
		Chime:    model.Chimes[0],
		Snooze:   model.SnoozeOptions[0],
	}))

	require.NoError(t, ToggleActive(store, "a1"))
	stored, err := store.GetAlarm("a1")
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	require.NoError(t, ToggleActive(store, "a1"))
	stored, err = store.GetAlarm("a1")
	require.NoError(t, err)
	assert.True(t, stored.IsActive)

	assert.NoError(t, ToggleActive(store, "missing"))
}

func TestTimerRegistryFollowsStore(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.AddTimer(model.Timer{ID: "t1", Name: "Tea", Duration: 300}))

	registry := NewTimerRegistry(manualConfig(), nil, nil)
	defer registry.Close()
	var sizes []int
	registry.OnChange(func(engines []*countdown.Countdown) { sizes = append(sizes, len(engines)) })
	require.NoError(t, registry.Attach(store))

	tea, ok := registry.Get("t1")
	require.True(t, ok)
	tea.Start()
	tea.Tick()

	require.NoError(t, store.AddTimer(model.Timer{ID: "t2", Name: "Eggs", Duration: 600}))
	require.Len(t, registry.Engines(), 2)

	name := "Green tea"
	require.NoError(t, store.UpdateTimer("t1", model.TimerPatch{Name: &name}))
	same, _ := registry.Get("t1")
	assert.Same(t, tea, same)
	assert.Equal(t, "Green tea", same.Definition().Name)
	assert.Equal(t, int64(299), same.Remaining(), "name change keeps the countdown")

	require.NoError(t, store.DeleteTimer("t1"))
	_, ok = registry.Get("t1")
	assert.False(t, ok)
	assert.Equal(t, []int{0, 1, 2, 2, 1}, sizes)
}

func TestTimerRegistryNotifiesOnExpiry(t *testing.T) {
	notifier := &recordingNotifier{}
	registry := NewTimerRegistry(manualConfig(), notifier, nil)
	defer registry.Close()

	registry.Sync([]model.Timer{{ID: "t1", Name: "Pasta", Duration: 2}})
	engine, ok := registry.Get("t1")
	require.True(t, ok)
	engine.Start()
	engine.Tick()
	engine.Tick()

	assert.Eventually(t, func() bool {
		return len(notifier.all()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Time's up - Pasta", notifier.all()[0])
}

func TestAlarmRegistryArmsAndNotifies(t *testing.T) {
	now := time.Date(2026, 10, 15, 6, 59, 30, 0, time.Local)
	notifier := &recordingNotifier{}
	registry := NewAlarmRegistry(manualConfig(), alarm.Options{Now: func() time.Time { return now }}, notifier, nil)
	defer registry.Close()

	registry.Sync([]model.Alarm{
		{ID: "a1", Title: "Wake", EndAt: model.EndAt{Hour: 7, Phase: model.AM}, IsActive: true, Chime: model.Chimes[0]},
		{ID: "a2", Title: "Lunch", EndAt: model.EndAt{Hour: 12, Phase: model.PM}, IsActive: true, Chime: model.Chimes[0]},
		{ID: "a3", Title: "Off", EndAt: model.EndAt{Hour: 6, Phase: model.AM}, IsActive: false, Chime: model.Chimes[0]},
	})

	wake, ok := registry.Get("a1")
	require.True(t, ok)
	assert.Equal(t, alarm.StateRinging, wake.Status().State)
	lunch, _ := registry.Get("a2")
	assert.Equal(t, alarm.StateArmed, lunch.Status().State)

	upcoming := registry.Upcoming()
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Wake", upcoming[0].Definition().Title)

	assert.Eventually(t, func() bool {
		return len(notifier.all()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Alarm Ringing - Wake", notifier.all()[0])

	registry.Sync([]model.Alarm{{ID: "a2", Title: "Lunch", EndAt: model.EndAt{Hour: 12, Phase: model.PM}, IsActive: true}})
	assert.Len(t, registry.Engines(), 1)
	assert.Equal(t, alarm.StateIdle, wake.Status().State)
}
