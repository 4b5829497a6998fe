// Package alarm resolves recurring alarm fire times and drives ringing.
package alarm

import (
	"sync"
	"time"

	"clockdeck/internal/core/model"
	"clockdeck/internal/core/ticksource"
)

// Player plays a chime once. onEnd runs exactly once per successful Play:
// with interrupted false when the chime finishes, or true when another
// Play, a Stop or a mute cuts it off.
type Player interface {
	Play(chime model.Chime, onEnd func(interrupted bool)) error
	Stop()
}

// Options injects collaborators.
type Options struct {
	Now    func() time.Time
	Player Player
}

// Status is a point-in-time view of an alarm.
type Status struct {
	State       State
	FireAt      time.Time
	HoursLeft   int
	MinutesLeft int
	InWindow    bool
}

// Engine polls the wall clock for one stored alarm.
type Engine struct {
	mu          sync.Mutex
	definition  model.Alarm
	state       State
	fireAt      time.Time
	hoursLeft   int
	minutesLeft int
	notified    bool
	playID      uint64
	retry       time.Duration
	retryTimer  *time.Timer
	source      *ticksource.Source
	player      Player
	now         func() time.Time
	events      []chan Event
}

// New creates an idle engine for the definition.
func New(definition model.Alarm, config model.EngineConfig, options Options) *Engine {
	config = config.WithDefaults()
	if options.Now == nil {
		options.Now = time.Now
	}
	engine := &Engine{
		definition: definition,
		state:      StateIdle,
		retry:      config.ShakeDuration,
		player:     options.Player,
		now:        options.Now,
	}
	engine.source = ticksource.New(config.PollInterval, engine.onTick)
	engine.refreshLocked()
	return engine
}

// RingingMessage is the notification text for a ringing alarm.
func RingingMessage(title string) string {
	return "Alarm Ringing - " + title
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	engine.events = append(engine.events, ch)
	engine.mu.Unlock()
	return ch
}

// Start arms the alarm and begins polling.
func (engine *Engine) Start() {
	engine.mu.Lock()
	if engine.state != StateIdle {
		engine.mu.Unlock()
		return
	}
	engine.armLocked()
	engine.mu.Unlock()
	engine.Poll()
}

// Stop halts polling and any chime. Stopping twice is a no-op.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if engine.state == StateIdle {
		engine.mu.Unlock()
		return
	}
	ringing := engine.state == StateRinging
	engine.haltLocked()
	engine.state = StateIdle
	engine.emitLocked(EventStateChange, "")
	engine.mu.Unlock()

	if ringing {
		engine.stopPlayer()
	}
}

// Suspend pauses re-arming while the alarm is being edited.
func (engine *Engine) Suspend() {
	engine.mu.Lock()
	if engine.state == StateIdle || engine.state == StateSuspended {
		engine.mu.Unlock()
		return
	}
	ringing := engine.state == StateRinging
	engine.haltLocked()
	engine.state = StateSuspended
	engine.emitLocked(EventStateChange, "")
	engine.mu.Unlock()

	if ringing {
		engine.stopPlayer()
	}
}

// Resume re-arms a suspended alarm.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	if engine.state != StateSuspended {
		engine.mu.Unlock()
		return
	}
	engine.armLocked()
	engine.mu.Unlock()
	engine.Poll()
}

// Poll recomputes the next fire time and rings inside the final minute.
// Inactive alarms pass through the window silently.
func (engine *Engine) Poll() {
	engine.poll(nil)
}

func (engine *Engine) onTick(tick ticksource.Tick) {
	engine.poll(&tick)
}

func (engine *Engine) poll(tick *ticksource.Tick) {
	engine.mu.Lock()
	if engine.state != StateArmed || (tick != nil && !engine.source.Current(*tick)) {
		engine.mu.Unlock()
		return
	}
	now := engine.now()
	engine.refreshAtLocked(now)
	engine.emitLocked(EventProgress, "")

	if !InRingWindow(now, engine.fireAt) {
		engine.notified = false
		engine.mu.Unlock()
		return
	}
	if !engine.definition.IsActive {
		engine.mu.Unlock()
		return
	}

	engine.source.Stop()
	engine.state = StateRinging
	engine.emitLocked(EventRinging, RingingMessage(engine.definition.Title))
	if !engine.notified {
		engine.notified = true
		engine.emitLocked(EventNotify, RingingMessage(engine.definition.Title))
	}
	engine.playID++
	playID := engine.playID
	chime := engine.definition.Chime
	player := engine.player
	engine.mu.Unlock()

	engine.play(player, chime, playID)
}

// Redefine applies a changed stored definition and recomputes the fire time.
// Deactivating a ringing alarm silences it and re-arms.
func (engine *Engine) Redefine(definition model.Alarm) {
	engine.mu.Lock()
	engine.definition = definition
	engine.refreshLocked()
	silence := engine.state == StateRinging && !definition.IsActive
	if silence {
		engine.haltLocked()
		engine.armLocked()
	}
	engine.emitLocked(EventProgress, "")
	engine.mu.Unlock()

	if silence {
		engine.stopPlayer()
	}
}

// Definition returns the stored alarm this engine follows.
func (engine *Engine) Definition() model.Alarm {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.definition
}

// Status returns the current view, recomputed against the clock.
func (engine *Engine) Status() Status {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state != StateRinging {
		engine.refreshLocked()
	}
	return Status{
		State:       engine.state,
		FireAt:      engine.fireAt,
		HoursLeft:   engine.hoursLeft,
		MinutesLeft: engine.minutesLeft,
		InWindow:    engine.hoursLeft == 0 && engine.minutesLeft == 0,
	}
}

// Close stops the engine and closes observers.
func (engine *Engine) Close() {
	engine.Stop()

	engine.mu.Lock()
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) play(player Player, chime model.Chime, playID uint64) {
	if player == nil {
		engine.scheduleRearm(playID)
		return
	}
	err := player.Play(chime, func(interrupted bool) {
		if interrupted {
			engine.scheduleRearm(playID)
			return
		}
		engine.chimeEnded(playID)
	})
	if err != nil {
		engine.scheduleRearm(playID)
	}
}

// scheduleRearm re-arms after the retry delay when a chime could not be
// played or was cut off by someone else.
func (engine *Engine) scheduleRearm(playID uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state != StateRinging || engine.playID != playID {
		return
	}
	engine.stopRetryLocked()
	engine.retryTimer = time.AfterFunc(engine.retry, func() {
		engine.chimeEnded(playID)
	})
}

func (engine *Engine) chimeEnded(playID uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.state != StateRinging || engine.playID != playID {
		return
	}
	engine.stopRetryLocked()
	engine.armLocked()
}

func (engine *Engine) armLocked() {
	engine.state = StateArmed
	engine.refreshLocked()
	engine.source.Start()
	engine.emitLocked(EventStateChange, "")
}

func (engine *Engine) haltLocked() {
	engine.source.Stop()
	engine.stopRetryLocked()
	engine.playID++
}

func (engine *Engine) stopRetryLocked() {
	if engine.retryTimer != nil {
		engine.retryTimer.Stop()
		engine.retryTimer = nil
	}
}

func (engine *Engine) stopPlayer() {
	if engine.player != nil {
		engine.player.Stop()
	}
}

func (engine *Engine) refreshLocked() {
	engine.refreshAtLocked(engine.now())
}

func (engine *Engine) refreshAtLocked(now time.Time) {
	engine.fireAt = NextFire(now, engine.definition.EndAt)
	engine.hoursLeft, engine.minutesLeft = Remaining(now, engine.fireAt)
}

func (engine *Engine) emitLocked(eventType EventType, message string) {
	if len(engine.events) == 0 {
		return
	}
	event := Event{
		Type:        eventType,
		AlarmID:     engine.definition.ID,
		State:       engine.state,
		FireAt:      engine.fireAt,
		HoursLeft:   engine.hoursLeft,
		MinutesLeft: engine.minutesLeft,
		Message:     message,
		At:          engine.now(),
	}
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
