package alarm

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"clockdeck/internal/core/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// Now returns the current time, then advances it by step.
func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	now := clock.now
	clock.now = clock.now.Add(clock.step)
	return now
}

func (clock *fakeClock) Set(now time.Time) {
	clock.mu.Lock()
	clock.now = now
	clock.mu.Unlock()
}

// fakePlayer mirrors audio.Player: a new Play cuts off the current chime,
// Stop cuts it off too, and a muted player refuses to play.
type fakePlayer struct {
	mu      sync.Mutex
	plays   []model.Chime
	pending func(interrupted bool)
	stops   int
	err     error
}

func (player *fakePlayer) Play(chime model.Chime, onEnd func(interrupted bool)) error {
	player.mu.Lock()
	if player.err != nil {
		player.mu.Unlock()
		return player.err
	}
	previous := player.pending
	player.plays = append(player.plays, chime)
	player.pending = onEnd
	player.mu.Unlock()

	if previous != nil {
		previous(true)
	}
	return nil
}

func (player *fakePlayer) Stop() {
	player.mu.Lock()
	player.stops++
	player.mu.Unlock()
	player.end(true)
}

func (player *fakePlayer) mute() {
	player.mu.Lock()
	player.err = errors.New("muted")
	player.mu.Unlock()
	player.Stop()
}

// finish lets the current chime play out.
func (player *fakePlayer) finish() {
	player.end(false)
}

func (player *fakePlayer) end(interrupted bool) {
	player.mu.Lock()
	onEnd := player.pending
	player.pending = nil
	player.mu.Unlock()
	if onEnd != nil {
		onEnd(interrupted)
	}
}

func (player *fakePlayer) playCount() int {
	player.mu.Lock()
	defer player.mu.Unlock()
	return len(player.plays)
}

func wakeUp() model.Alarm {
	return model.Alarm{
		ID:            "a1",
		Title:         "Wake up",
		EndAt:         model.EndAt{Hour: 7, Minute: 0, Phase: model.AM},
		RepeatOn:      []model.Day{model.Monday},
		RepeatEnabled: true,
		IsActive:      true,
		Chime:         model.ChimeByID("2"),
		Snooze:        model.SnoozeByID("0"),
	}
}

func newEngine(t *testing.T, definition model.Alarm, clock *fakeClock, player Player) *Engine {
	t.Helper()
	engine := New(definition, model.EngineConfig{PollInterval: time.Hour, ShakeDuration: time.Hour}, Options{
		Now:    clock.Now,
		Player: player,
	})
	t.Cleanup(engine.Close)
	return engine
}

func collect(events <-chan Event, eventType EventType) []Event {
	var matched []Event
	for len(events) > 0 {
		event := <-events
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

func TestEngineArmsAndCountsDown(t *testing.T) {
	clock := &fakeClock{now: at(2026, 10, 15, 5, 30, 0)}
	engine := newEngine(t, wakeUp(), clock, &fakePlayer{})

	engine.Start()
	status := engine.Status()
	assert.Equal(t, StateArmed, status.State)
	assert.Equal(t, at(2026, 10, 15, 7, 0, 0), status.FireAt)
	assert.Equal(t, 1, status.HoursLeft)
	assert.Equal(t, 30, status.MinutesLeft)
	assert.False(t, status.InWindow)
}

func TestEngineRingsOncePerEpisode(t *testing.T) {
	clock := &fakeClock{now: at(2026, 10, 15, 6, 58, 0)}
	player := &fakePlayer{}
	engine := newEngine(t, wakeUp(), clock, player)
	events := engine.Subscribe(64)

	engine.Start()
	assert.Zero(t, player.playCount())

	clock.Set(at(2026, 10, 15, 6, 59, 10))
	engine.Poll()
	assert.Equal(t, StateRinging, engine.Status().State)
	require.Equal(t, 1, player.playCount())
	assert.Equal(t, "Xylophone", player.plays[0].Title)

	// Polls while ringing do nothing.
	engine.Poll()
	assert.Equal(t, 1, player.playCount())

	// Chime end re-arms; the next poll inside the window loops the chime.
	player.finish()
	assert.Equal(t, StateArmed, engine.Status().State)
	clock.Set(at(2026, 10, 15, 6, 59, 30))
	engine.Poll()
	assert.Equal(t, 2, player.playCount())

	notifications := collect(events, EventNotify)
	require.Len(t, notifications, 1, "one notification per ringing episode")
	assert.Equal(t, "Alarm Ringing - Wake up", notifications[0].Message)

	// Leaving the window clears the sent flag so tomorrow notifies again.
	player.finish()
	clock.Set(at(2026, 10, 15, 7, 0, 5))
	engine.Poll()
	assert.Equal(t, at(2026, 10, 16, 7, 0, 0), engine.Status().FireAt)

	clock.Set(at(2026, 10, 16, 6, 59, 20))
	engine.Poll()
	assert.Len(t, collect(events, EventNotify), 1)
}

func TestEngineInactiveSkipsSilently(t *testing.T) {
	definition := wakeUp()
	definition.IsActive = false
	clock := &fakeClock{now: at(2026, 10, 15, 6, 59, 30)}
	player := &fakePlayer{}
	engine := newEngine(t, definition, clock, player)
	events := engine.Subscribe(16)

	engine.Start()
	engine.Poll()

	assert.Zero(t, player.playCount())
	assert.Equal(t, StateArmed, engine.Status().State)
	assert.True(t, engine.Status().InWindow)
	assert.Empty(t, collect(events, EventNotify))
}

func TestEngineIgnoresRepeatDays(t *testing.T) {
	definition := wakeUp()
	definition.RepeatOn = nil
	definition.RepeatEnabled = true
	clock := &fakeClock{now: at(2026, 10, 18, 6, 59, 30)}
	player := &fakePlayer{}
	engine := newEngine(t, definition, clock, player)

	engine.Start()
	assert.Equal(t, 1, player.playCount(), "weekday selection does not gate firing")
}

func TestEngineSuspendAndResume(t *testing.T) {
	clock := &fakeClock{now: at(2026, 10, 15, 6, 0, 0)}
	player := &fakePlayer{}
	engine := newEngine(t, wakeUp(), clock, player)

	engine.Start()
	engine.Suspend()
	engine.Suspend()
	assert.Equal(t, StateSuspended, engine.Status().State)

	clock.Set(at(2026, 10, 15, 6, 59, 30))
	engine.Poll()
	assert.Zero(t, player.playCount(), "suspended alarm does not poll")

	engine.Resume()
	assert.Equal(t, StateRinging, engine.Status().State)
	assert.Equal(t, 1, player.playCount())

	engine.Suspend()
	assert.Equal(t, 1, player.stops, "suspending a ringing alarm silences it")
	player.finish()
	assert.Equal(t, StateSuspended, engine.Status().State, "stale chime end is ignored")
}

func TestEngineDeactivateWhileRinging(t *testing.T) {
	clock := &fakeClock{now: at(2026, 10, 15, 6, 59, 30)}
	player := &fakePlayer{}
	engine := newEngine(t, wakeUp(), clock, player)

	engine.Start()
	require.Equal(t, StateRinging, engine.Status().State)

	definition := wakeUp()
	definition.IsActive = false
	engine.Redefine(definition)

	assert.Equal(t, StateArmed, engine.Status().State)
	assert.Equal(t, 1, player.stops)
}

func TestEngineRedefineMovesFireTime(t *testing.T) {
	clock := &fakeClock{now: at(2026, 10, 15, 5, 0, 0)}
	engine := newEngine(t, wakeUp(), clock, &fakePlayer{})
	engine.Start()

	definition := wakeUp()
	definition.EndAt = model.EndAt{Hour: 4, Minute: 45, Phase: model.AM}
	engine.Redefine(definition)

	assert.Equal(t, at(2026, 10, 16, 4, 45, 0), engine.Status().FireAt)
}

func TestEngineStopIsIdempotent(t *testing.T) {
	clock := &fakeClock{now: at(2026, 10, 15, 6, 59, 30)}
	player := &fakePlayer{}
	engine := newEngine(t, wakeUp(), clock, player)

	engine.Start()
	engine.Stop()
	engine.Stop()
	assert.Equal(t, StateIdle, engine.Status().State)
	assert.Equal(t, 1, player.stops)
}

func TestEnginePlayFailureRetries(t *testing.T) {
	clock := &fakeClock{now: at(2026, 10, 15, 6, 59, 30)}
	player := &fakePlayer{err: errors.New("no audio device")}
	engine := New(wakeUp(), model.EngineConfig{PollInterval: time.Hour, ShakeDuration: 50 * time.Millisecond}, Options{
		Now:    clock.Now,
		Player: player,
	})
	defer engine.Close()

	engine.Start()
	assert.Equal(t, StateRinging, engine.Status().State)
	assert.Eventually(t, func() bool { return engine.Status().State == StateArmed }, time.Second, time.Millisecond)
}

func newRetryingEngine(t *testing.T, definition model.Alarm, clock *fakeClock, player Player) *Engine {
	t.Helper()
	engine := New(definition, model.EngineConfig{PollInterval: time.Hour, ShakeDuration: 50 * time.Millisecond}, Options{
		Now:    clock.Now,
		Player: player,
	})
	t.Cleanup(engine.Close)
	return engine
}

func TestEnginesSharingPlayerBothRearm(t *testing.T) {
	clock := &fakeClock{now: at(2026, 10, 15, 6, 59, 30)}
	player := &fakePlayer{}
	second := wakeUp()
	second.ID = "a2"
	second.Title = "Second"
	first := newRetryingEngine(t, wakeUp(), clock, player)
	other := newRetryingEngine(t, second, clock, player)

	first.Start()
	require.Equal(t, StateRinging, first.Status().State)
	other.Start()
	require.Equal(t, StateRinging, other.Status().State)
	assert.Equal(t, 2, player.playCount())

	assert.Eventually(t, func() bool { return first.Status().State == StateArmed }, time.Second, time.Millisecond)
	assert.Equal(t, StateRinging, other.Status().State)

	player.finish()
	assert.Equal(t, StateArmed, other.Status().State)
}

func TestEngineMutedWhileRingingRearms(t *testing.T) {
	clock := &fakeClock{now: at(2026, 10, 15, 6, 59, 30)}
	player := &fakePlayer{}
	engine := newRetryingEngine(t, wakeUp(), clock, player)

	engine.Start()
	require.Equal(t, StateRinging, engine.Status().State)

	player.mute()
	assert.Eventually(t, func() bool { return engine.Status().State == StateArmed }, time.Second, time.Millisecond)

	engine.Poll()
	assert.Eventually(t, func() bool { return engine.Status().State == StateArmed }, time.Second, time.Millisecond)
	assert.Equal(t, 1, player.playCount())
}

func TestEnginePollReadsClockOnceForWindow(t *testing.T) {
	clock := &fakeClock{now: at(2026, 10, 15, 6, 50, 0)}
	player := &fakePlayer{}
	engine := newEngine(t, wakeUp(), clock, player)
	engine.Start()

	clock.mu.Lock()
	clock.now = at(2026, 10, 15, 6, 58, 59)
	clock.step = 2 * time.Second
	clock.mu.Unlock()

	engine.Poll()
	assert.Equal(t, StateArmed, engine.Status().State)
	assert.Zero(t, player.playCount())
}
