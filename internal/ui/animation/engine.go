// Package animation drives small time-based widget effects.
package animation

import (
	"context"
	"sync"
	"time"
)

// Engine runs one animation at a time and reports each frame to apply.
type Engine struct {
	mu     sync.Mutex
	apply  func(offset float32)
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates an engine that reports frames to apply.
func New(apply func(offset float32)) *Engine {
	return &Engine{apply: apply}
}

// Start runs shake until it completes, ctx ends or Stop is called. A
// running animation is replaced. The final frame is always zero.
func (engine *Engine) Start(ctx context.Context, shake Shake) {
	engine.Stop()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	engine.mu.Lock()
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go engine.run(runCtx, shake, done)
}

// Stop ends the current animation and waits for its last frame.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel, done := engine.cancel, engine.done
	engine.cancel, engine.done = nil, nil
	engine.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Running reports whether an animation is in progress.
func (engine *Engine) Running() bool {
	engine.mu.Lock()
	done := engine.done
	engine.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

func (engine *Engine) run(ctx context.Context, shake Shake, done chan struct{}) {
	defer close(done)
	defer engine.apply(0)

	frame := shake.Frame
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	start := time.Now()
	for {
		elapsed := time.Since(start)
		if elapsed >= shake.Duration {
			return
		}
		engine.apply(shake.Offset(elapsed))
		if !waitFrame(ctx, ticker) {
			return
		}
	}
}

func waitFrame(ctx context.Context, ticker *time.Ticker) bool {
	select {
	case <-ctx.Done():
		return false
	case <-ticker.C:
		return true
	}
}
