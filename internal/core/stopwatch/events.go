package stopwatch

import "time"

// State represents the current stopwatch mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// EventType defines the type of stopwatch event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventLap         EventType = "lap"
)

// Event is a stopwatch update for observers.
type Event struct {
	Type    EventType
	State   State
	Elapsed int64
	Laps    []Lap
	At      time.Time
}
