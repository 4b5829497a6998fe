// Package ticksource runs a callback on a fixed interval from its own goroutine.
package ticksource

import (
	"sync"
	"time"
)

// Tick is one delivery from a Source. Run identifies the Start call that
// produced it.
type Tick struct {
	At  time.Time
	Run uint64
}

// Source is a restartable periodic callback. Stop does not wait for a
// callback already in flight; callbacks that must not outlive a Stop check
// Current under their own lock.
type Source struct {
	mu       sync.Mutex
	interval time.Duration
	onTick   func(Tick)
	stopCh   chan struct{}
	running  bool
	run      uint64
}

// New creates a stopped source. A non-positive interval falls back to 10ms.
func New(interval time.Duration, onTick func(Tick)) *Source {
	if interval <= 0 {
		interval = 10 * time.Millisecond
	}
	return &Source{
		interval: interval,
		onTick:   onTick,
	}
}

// Interval returns the tick period.
func (source *Source) Interval() time.Duration {
	return source.interval
}

// Start launches the ticking loop. It reports false if the source was
// already running.
func (source *Source) Start() bool {
	source.mu.Lock()
	if source.running {
		source.mu.Unlock()
		return false
	}
	stopCh := make(chan struct{})
	source.stopCh = stopCh
	source.running = true
	source.run++
	run := source.run
	source.mu.Unlock()

	go source.loop(stopCh, run)
	return true
}

// Stop terminates the ticking loop. Stopping a stopped source is a no-op
// and it is safe to call from inside the tick callback.
func (source *Source) Stop() bool {
	source.mu.Lock()
	defer source.mu.Unlock()
	if !source.running {
		return false
	}
	close(source.stopCh)
	source.stopCh = nil
	source.running = false
	return true
}

// Running reports whether the loop is active.
func (source *Source) Running() bool {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.running
}

// Current reports whether tick came from the loop that is running now. It
// is false for a tick delivered after Stop, even if Start followed.
func (source *Source) Current(tick Tick) bool {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.running && source.run == tick.Run
}

func (source *Source) loop(stopCh <-chan struct{}, run uint64) {
	ticker := time.NewTicker(source.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			select {
			case <-stopCh:
				return
			default:
			}
			if source.onTick != nil {
				source.onTick(Tick{At: tickTime, Run: run})
			}
		}
	}
}
