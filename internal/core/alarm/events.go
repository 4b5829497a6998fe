package alarm

import "time"

// State represents the current alarm mode.
type State string

const (
	StateIdle      State = "idle"
	StateArmed     State = "armed"
	StateRinging   State = "ringing"
	StateSuspended State = "suspended"
)

// EventType defines the type of alarm event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventRinging     EventType = "ringing"
	EventNotify      EventType = "notify"
)

// Event is an alarm update for observers.
type Event struct {
	Type        EventType
	AlarmID     string
	State       State
	FireAt      time.Time
	HoursLeft   int
	MinutesLeft int
	Message     string
	At          time.Time
}
