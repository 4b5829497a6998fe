package storage

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"clockdeck/internal/core/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
}

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "clockdeck.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleAlarm(id string) model.Alarm {
	return model.Alarm{
		ID:            id,
		Title:         "Standup",
		EndAt:         model.EndAt{Hour: 9, Minute: 30, Phase: model.AM},
		RepeatOn:      []model.Day{model.Monday, model.Wednesday, model.Friday},
		RepeatEnabled: true,
		IsActive:      true,
		Chime:         model.ChimeByID("3"),
		Snooze:        model.SnoozeByID("2"),
	}
}

func TestTimerRoundTrip(t *testing.T) {
	store := openStore(t)

	tea := model.Timer{ID: "t1", Name: "Tea", Duration: 18000}
	eggs := model.Timer{ID: "t2", Name: "Eggs", Duration: 42000}
	require.NoError(t, store.AddTimer(tea))
	require.NoError(t, store.AddTimer(eggs))

	timers, err := store.ListTimers()
	require.NoError(t, err)
	if diff := cmp.Diff([]model.Timer{tea, eggs}, timers); diff != "" {
		t.Fatalf("timers mismatch (-want +got):\n%s", diff)
	}

	got, err := store.GetTimer("t2")
	require.NoError(t, err)
	assert.Equal(t, eggs, got)

	_, err = store.GetTimer("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimerPatchLeavesOtherFields(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.AddTimer(model.Timer{ID: "t1", Name: "Tea", Duration: 18000}))

	name := "Green tea"
	require.NoError(t, store.UpdateTimer("t1", model.TimerPatch{Name: &name}))
	got, err := store.GetTimer("t1")
	require.NoError(t, err)
	assert.Equal(t, model.Timer{ID: "t1", Name: "Green tea", Duration: 18000}, got)

	duration := int64(12000)
	require.NoError(t, store.UpdateTimer("t1", model.TimerPatch{Duration: &duration}))
	got, err = store.GetTimer("t1")
	require.NoError(t, err)
	assert.Equal(t, model.Timer{ID: "t1", Name: "Green tea", Duration: 12000}, got)
}

func TestMissingIDIsNoOp(t *testing.T) {
	store := openStore(t)
	name := "ghost"
	active := false

	assert.NoError(t, store.UpdateTimer("nope", model.TimerPatch{Name: &name}))
	assert.NoError(t, store.DeleteTimer("nope"))
	assert.NoError(t, store.UpdateAlarm("nope", model.AlarmPatch{IsActive: &active}))
	assert.NoError(t, store.DeleteAlarm("nope"))

	timers, err := store.ListTimers()
	require.NoError(t, err)
	assert.Empty(t, timers)
}

func TestAddReplacesSameID(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.AddTimer(model.Timer{ID: "t1", Name: "Tea", Duration: 100}))
	require.NoError(t, store.AddTimer(model.Timer{ID: "t2", Name: "Eggs", Duration: 200}))
	require.NoError(t, store.AddTimer(model.Timer{ID: "t1", Name: "Coffee", Duration: 300}))

	timers, err := store.ListTimers()
	require.NoError(t, err)
	assert.Equal(t, []model.Timer{
		{ID: "t1", Name: "Coffee", Duration: 300},
		{ID: "t2", Name: "Eggs", Duration: 200},
	}, timers)
}

func TestAlarmRoundTripAndPatch(t *testing.T) {
	store := openStore(t)
	standup := sampleAlarm("a1")
	require.NoError(t, store.AddAlarm(standup))

	alarms, err := store.ListAlarms()
	require.NoError(t, err)
	if diff := cmp.Diff([]model.Alarm{standup}, alarms); diff != "" {
		t.Fatalf("alarms mismatch (-want +got):\n%s", diff)
	}

	inactive := false
	require.NoError(t, store.UpdateAlarm("a1", model.AlarmPatch{IsActive: &inactive}))
	got, err := store.GetAlarm("a1")
	require.NoError(t, err)

	want := standup
	want.IsActive = false
	assert.Equal(t, want, got)

	endAt := model.EndAt{Hour: 12, Minute: 0, Phase: model.PM}
	weekend := []model.Day{model.Saturday, model.Sunday}
	chime := model.ChimeByID("10")
	require.NoError(t, store.UpdateAlarm("a1", model.AlarmPatch{EndAt: &endAt, RepeatOn: &weekend, Chime: &chime}))
	got, err = store.GetAlarm("a1")
	require.NoError(t, err)
	assert.Equal(t, endAt, got.EndAt)
	assert.Equal(t, weekend, got.RepeatOn)
	assert.Equal(t, "Ascending", got.Chime.Title)
	assert.Equal(t, "Standup", got.Title)
	assert.Equal(t, "10 Minutes", got.Snooze.Title)

	require.NoError(t, store.DeleteAlarm("a1"))
	_, err = store.GetAlarm("a1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAlarmWithoutRepeatDays(t *testing.T) {
	store := openStore(t)
	alarm := sampleAlarm("a1")
	alarm.RepeatOn = nil
	require.NoError(t, store.AddAlarm(alarm))

	got, err := store.GetAlarm("a1")
	require.NoError(t, err)
	assert.Nil(t, got.RepeatOn)
}

type recorder[T any] struct {
	mu        sync.Mutex
	snapshots [][]T
}

func (rec *recorder[T]) record(records []T) {
	rec.mu.Lock()
	rec.snapshots = append(rec.snapshots, records)
	rec.mu.Unlock()
}

func (rec *recorder[T]) all() [][]T {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([][]T(nil), rec.snapshots...)
}

func TestSubscribeTimersReplaysAfterMutations(t *testing.T) {
	store := openStore(t)
	require.NoError(t, store.AddTimer(model.Timer{ID: "t1", Name: "Tea", Duration: 100}))

	rec := &recorder[model.Timer]{}
	cancel, err := store.SubscribeTimers(rec.record)
	require.NoError(t, err)

	require.NoError(t, store.AddTimer(model.Timer{ID: "t2", Name: "Eggs", Duration: 200}))
	require.NoError(t, store.DeleteTimer("t1"))
	require.NoError(t, store.DeleteTimer("t1"))

	// Alarm mutations do not touch the timer feed.
	require.NoError(t, store.AddAlarm(sampleAlarm("a1")))

	cancel()
	cancel()
	require.NoError(t, store.AddTimer(model.Timer{ID: "t3", Name: "Rice", Duration: 300}))

	snapshots := rec.all()
	require.Len(t, snapshots, 3)
	assert.Equal(t, []model.Timer{{ID: "t1", Name: "Tea", Duration: 100}}, snapshots[0])
	assert.Len(t, snapshots[1], 2)
	assert.Equal(t, []model.Timer{{ID: "t2", Name: "Eggs", Duration: 200}}, snapshots[2])
}

func TestSubscribeAlarms(t *testing.T) {
	store := openStore(t)

	rec := &recorder[model.Alarm]{}
	cancel, err := store.SubscribeAlarms(rec.record)
	require.NoError(t, err)
	defer cancel()

	require.NoError(t, store.AddAlarm(sampleAlarm("a1")))
	title := "Retro"
	require.NoError(t, store.UpdateAlarm("a1", model.AlarmPatch{Title: &title}))

	snapshots := rec.all()
	require.Len(t, snapshots, 3)
	assert.Empty(t, snapshots[0])
	assert.Equal(t, "Standup", snapshots[1][0].Title)
	assert.Equal(t, "Retro", snapshots[2][0].Title)
}

func TestClosedStore(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "clockdeck.db"), nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err = store.ListTimers()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, store.AddAlarm(sampleAlarm("a1")), ErrClosed)
	_, err = store.SubscribeTimers(func([]model.Timer) {})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clockdeck.db")
	store, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, store.AddTimer(model.Timer{ID: "t1", Name: "Tea", Duration: 100}))
	require.NoError(t, store.Close())

	reopened, err := Open(path, nil)
	require.NoError(t, err)
	defer reopened.Close()
	timers, err := reopened.ListTimers()
	require.NoError(t, err)
	assert.Len(t, timers, 1)
}
