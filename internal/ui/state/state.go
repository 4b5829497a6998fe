// Package state holds UI state shared across windows.
package state

import "sync"

// Focus identifies what the maximized view shows.
type Focus struct {
	Kind string
	ID   string
}

// Focus kinds.
const (
	FocusStopwatch = "stopwatch"
	FocusTimer     = "timer"
)

// Maximized is the shared "maximized" flag. Toggle is the only mutation
// and every change is delivered to subscribers in registration order.
type Maximized struct {
	mu        sync.Mutex
	value     bool
	focus     Focus
	nextID    int
	listeners map[int]func(bool, Focus)
	order     []int
}

// NewMaximized returns an un-maximized state.
func NewMaximized() *Maximized {
	return &Maximized{listeners: make(map[int]func(bool, Focus))}
}

// Value reports the flag and the focused item.
func (state *Maximized) Value() (bool, Focus) {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.value, state.focus
}

// Toggle flips the flag. Maximizing records focus; restoring clears it.
func (state *Maximized) Toggle(focus Focus) {
	state.mu.Lock()
	state.value = !state.value
	if state.value {
		state.focus = focus
	} else {
		state.focus = Focus{}
	}
	value, current := state.value, state.focus
	listeners := state.snapshotLocked()
	state.mu.Unlock()

	for _, listener := range listeners {
		listener(value, current)
	}
}

// Subscribe registers fn and returns a function that removes it.
func (state *Maximized) Subscribe(fn func(bool, Focus)) func() {
	state.mu.Lock()
	state.nextID++
	id := state.nextID
	state.listeners[id] = fn
	state.order = append(state.order, id)
	state.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			state.mu.Lock()
			delete(state.listeners, id)
			state.mu.Unlock()
		})
	}
}

func (state *Maximized) snapshotLocked() []func(bool, Focus) {
	listeners := make([]func(bool, Focus), 0, len(state.listeners))
	kept := state.order[:0]
	for _, id := range state.order {
		if fn, ok := state.listeners[id]; ok {
			listeners = append(listeners, fn)
			kept = append(kept, id)
		}
	}
	state.order = kept
	return listeners
}
