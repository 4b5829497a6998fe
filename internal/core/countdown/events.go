package countdown

import "time"

// State represents the current countdown mode.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateExpired State = "expired"
)

// EventType defines the type of countdown event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventExpired     EventType = "expired"
)

// Event is a countdown update for observers. Message carries the
// notification text on EventExpired.
type Event struct {
	Type      EventType
	TimerID   string
	State     State
	Remaining int64
	Duration  int64
	Message   string
	At        time.Time
}
