// Package stopwatch implements a centisecond stopwatch with ranked laps.
package stopwatch

import (
	"sync"
	"time"

	"clockdeck/internal/core/model"
	"clockdeck/internal/core/ticksource"
)

// Stopwatch is a state machine advanced by a periodic tick source.
type Stopwatch struct {
	mu      sync.Mutex
	state   State
	elapsed int64
	laps    []Lap
	source  *ticksource.Source
	events  []chan Event
}

// New creates an idle stopwatch.
func New(config model.EngineConfig) *Stopwatch {
	config = config.WithDefaults()
	stopwatch := &Stopwatch{state: StateIdle}
	stopwatch.source = ticksource.New(config.TickInterval, stopwatch.onTick)
	return stopwatch
}

// Subscribe registers a new observer channel.
func (stopwatch *Stopwatch) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	stopwatch.mu.Lock()
	stopwatch.events = append(stopwatch.events, ch)
	stopwatch.mu.Unlock()
	return ch
}

// Start begins ticking from Idle or Paused.
func (stopwatch *Stopwatch) Start() {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	if stopwatch.state == StateRunning {
		return
	}
	stopwatch.state = StateRunning
	stopwatch.source.Start()
	stopwatch.emitLocked(EventStateChange)
}

// Pause stops ticking and keeps elapsed time and laps.
func (stopwatch *Stopwatch) Pause() {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	if stopwatch.state != StateRunning {
		return
	}
	stopwatch.source.Stop()
	stopwatch.state = StatePaused
	stopwatch.emitLocked(EventStateChange)
}

// Toggle starts a stopped stopwatch or pauses a running one.
func (stopwatch *Stopwatch) Toggle() {
	if stopwatch.State() == StateRunning {
		stopwatch.Pause()
		return
	}
	stopwatch.Start()
}

// Reset stops ticking, zeroes elapsed time and clears laps.
func (stopwatch *Stopwatch) Reset() {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	stopwatch.source.Stop()
	stopwatch.state = StateIdle
	stopwatch.elapsed = 0
	stopwatch.laps = nil
	stopwatch.emitLocked(EventStateChange)
}

// RecordLap records a split. It is a no-op unless the stopwatch is running.
func (stopwatch *Stopwatch) RecordLap() bool {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	if stopwatch.state != StateRunning {
		return false
	}
	stopwatch.laps = RankLap(stopwatch.laps, stopwatch.elapsed)
	stopwatch.emitLocked(EventLap)
	return true
}

// Tick advances the counter by one tick while running.
func (stopwatch *Stopwatch) Tick() {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	stopwatch.tickLocked()
}

func (stopwatch *Stopwatch) onTick(tick ticksource.Tick) {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	if stopwatch.source.Current(tick) {
		stopwatch.tickLocked()
	}
}

func (stopwatch *Stopwatch) tickLocked() {
	if stopwatch.state != StateRunning {
		return
	}
	stopwatch.elapsed++
	stopwatch.emitLocked(EventProgress)
}

// State returns the current mode.
func (stopwatch *Stopwatch) State() State {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	return stopwatch.state
}

// Elapsed returns the elapsed tick count.
func (stopwatch *Stopwatch) Elapsed() int64 {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	return stopwatch.elapsed
}

// Laps returns a copy of the lap list, newest first.
func (stopwatch *Stopwatch) Laps() []Lap {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	return append([]Lap(nil), stopwatch.laps...)
}

// Close stops ticking and closes observer channels.
func (stopwatch *Stopwatch) Close() {
	stopwatch.mu.Lock()
	stopwatch.source.Stop()
	if stopwatch.state == StateRunning {
		stopwatch.state = StatePaused
	}
	events := stopwatch.events
	stopwatch.events = nil
	stopwatch.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (stopwatch *Stopwatch) emitLocked(eventType EventType) {
	if len(stopwatch.events) == 0 {
		return
	}
	event := Event{
		Type:    eventType,
		State:   stopwatch.state,
		Elapsed: stopwatch.elapsed,
		At:      time.Now(),
	}
	if eventType != EventProgress {
		event.Laps = append([]Lap(nil), stopwatch.laps...)
	}
	for _, ch := range stopwatch.events {
		select {
		case ch <- event:
		default:
		}
	}
}
