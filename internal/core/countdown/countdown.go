// Package countdown implements the per-timer countdown engine.
package countdown

import (
	"sync"
	"time"

	"clockdeck/internal/core/model"
	"clockdeck/internal/core/ticksource"
)

// Countdown decrements a tick counter from a stored timer's duration.
type Countdown struct {
	mu         sync.Mutex
	definition model.Timer
	remaining  int64
	state      State
	source     *ticksource.Source
	shake      time.Duration
	shakeTimer *time.Timer
	events     []chan Event
}

// New creates an idle countdown for the definition.
func New(definition model.Timer, config model.EngineConfig) *Countdown {
	config = config.WithDefaults()
	countdown := &Countdown{
		definition: definition,
		remaining:  definition.Duration,
		state:      StateIdle,
		shake:      config.ShakeDuration,
	}
	countdown.source = ticksource.New(config.TickInterval, countdown.onTick)
	return countdown
}

// ExpiredMessage is the notification text for a finished timer.
func ExpiredMessage(name string) string {
	return "Time's up - " + name
}

// Subscribe registers a new observer channel.
func (countdown *Countdown) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	countdown.mu.Lock()
	countdown.events = append(countdown.events, ch)
	countdown.mu.Unlock()
	return ch
}

// Start begins counting down.
func (countdown *Countdown) Start() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.state == StateRunning || countdown.definition.Duration <= 0 {
		return
	}
	countdown.stopShakeLocked()
	if countdown.remaining <= 0 {
		countdown.remaining = countdown.definition.Duration
	}
	countdown.state = StateRunning
	countdown.source.Start()
	countdown.emitLocked(EventStateChange, "")
}

// Pause stops counting and keeps the remaining ticks.
func (countdown *Countdown) Pause() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.state != StateRunning {
		return
	}
	countdown.source.Stop()
	countdown.state = StateIdle
	countdown.emitLocked(EventStateChange, "")
}

// Toggle starts a stopped countdown or pauses a running one.
func (countdown *Countdown) Toggle() {
	if countdown.State() == StateRunning {
		countdown.Pause()
		return
	}
	countdown.Start()
}

// Reset stops counting and restores the full duration.
func (countdown *Countdown) Reset() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.source.Stop()
	countdown.stopShakeLocked()
	countdown.remaining = countdown.definition.Duration
	countdown.state = StateIdle
	countdown.emitLocked(EventStateChange, "")
}

// Tick consumes one tick while running and expires at zero.
func (countdown *Countdown) Tick() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.tickLocked()
}

func (countdown *Countdown) onTick(tick ticksource.Tick) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.source.Current(tick) {
		countdown.tickLocked()
	}
}

func (countdown *Countdown) tickLocked() {
	if countdown.state != StateRunning {
		return
	}
	countdown.remaining--
	if countdown.remaining > 0 {
		countdown.emitLocked(EventProgress, "")
		return
	}
	countdown.expireLocked()
}

// Redefine applies a changed stored definition. A changed duration always
// re-derives the remaining ticks, even mid-countdown.
func (countdown *Countdown) Redefine(definition model.Timer) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	durationChanged := definition.Duration != countdown.definition.Duration
	countdown.definition = definition
	if durationChanged {
		countdown.remaining = definition.Duration
	}
	countdown.emitLocked(EventProgress, "")
}

// Definition returns the stored timer this countdown follows.
func (countdown *Countdown) Definition() model.Timer {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.definition
}

// State returns the current mode.
func (countdown *Countdown) State() State {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.state
}

// Remaining returns the remaining ticks.
func (countdown *Countdown) Remaining() int64 {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.remaining
}

// Started reports whether the countdown has moved away from its full duration.
func (countdown *Countdown) Started() bool {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.state == StateRunning || countdown.remaining != countdown.definition.Duration
}

// Fraction returns remaining/duration in [0, 1].
func (countdown *Countdown) Fraction() float64 {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.definition.Duration <= 0 {
		return 0
	}
	fraction := float64(countdown.remaining) / float64(countdown.definition.Duration)
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// Close stops ticking, cancels pending feedback and closes observers.
func (countdown *Countdown) Close() {
	countdown.mu.Lock()
	countdown.source.Stop()
	countdown.stopShakeLocked()
	events := countdown.events
	countdown.events = nil
	countdown.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (countdown *Countdown) expireLocked() {
	countdown.source.Stop()
	countdown.remaining = countdown.definition.Duration
	countdown.state = StateExpired
	countdown.emitLocked(EventExpired, ExpiredMessage(countdown.definition.Name))

	countdown.stopShakeLocked()
	var shakeTimer *time.Timer
	shakeTimer = time.AfterFunc(countdown.shake, func() {
		countdown.endShake(shakeTimer)
	})
	countdown.shakeTimer = shakeTimer
}

func (countdown *Countdown) endShake(timer *time.Timer) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	if countdown.shakeTimer != timer || countdown.state != StateExpired {
		return
	}
	countdown.shakeTimer = nil
	countdown.state = StateIdle
	countdown.emitLocked(EventStateChange, "")
}

func (countdown *Countdown) stopShakeLocked() {
	if countdown.shakeTimer != nil {
		countdown.shakeTimer.Stop()
		countdown.shakeTimer = nil
	}
}

func (countdown *Countdown) emitLocked(eventType EventType, message string) {
	if len(countdown.events) == 0 {
		return
	}
	event := Event{
		Type:      eventType,
		TimerID:   countdown.definition.ID,
		State:     countdown.state,
		Remaining: countdown.remaining,
		Duration:  countdown.definition.Duration,
		Message:   message,
		At:        time.Now(),
	}
	for _, ch := range countdown.events {
		select {
		case ch <- event:
		default:
		}
	}
}
