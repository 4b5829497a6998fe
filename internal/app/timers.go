package app

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"clockdeck/internal/core/countdown"
	"clockdeck/internal/core/model"
)

// TimerRegistry owns one countdown per stored timer and keeps the set in
// step with the timers table.
type TimerRegistry struct {
	mu        sync.Mutex
	config    model.EngineConfig
	notifier  Notifier
	logger    *zap.Logger
	engines   map[string]*countdown.Countdown
	order     []string
	listeners []func([]*countdown.Countdown)
	cancel    func()
	wg        sync.WaitGroup
}

// NewTimerRegistry creates an empty registry.
func NewTimerRegistry(config model.EngineConfig, notifier Notifier, logger *zap.Logger) *TimerRegistry {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimerRegistry{
		config:   config,
		notifier: notifier,
		logger:   logger,
		engines:  make(map[string]*countdown.Countdown),
	}
}

// Attach subscribes the registry to the store's timers table.
func (registry *TimerRegistry) Attach(store Store) error {
	cancel, err := store.SubscribeTimers(registry.Sync)
	if err != nil {
		return fmt.Errorf("subscribe timers: %w", err)
	}
	registry.mu.Lock()
	registry.cancel = cancel
	registry.mu.Unlock()
	return nil
}

// OnChange registers fn to receive the engine list after every sync.
func (registry *TimerRegistry) OnChange(fn func([]*countdown.Countdown)) {
	registry.mu.Lock()
	registry.listeners = append(registry.listeners, fn)
	engines := registry.listLocked()
	registry.mu.Unlock()
	fn(engines)
}

// Sync reconciles engines with the stored timers: new records get an
// engine, changed records are redefined, removed records are closed.
func (registry *TimerRegistry) Sync(timers []model.Timer) {
	registry.mu.Lock()
	seen := make(map[string]bool, len(timers))
	order := make([]string, 0, len(timers))
	for _, timer := range timers {
		seen[timer.ID] = true
		order = append(order, timer.ID)
		if engine, ok := registry.engines[timer.ID]; ok {
			engine.Redefine(timer)
			continue
		}
		engine := countdown.New(timer, registry.config)
		registry.engines[timer.ID] = engine
		registry.watch(engine)
	}

	var removed []*countdown.Countdown
	for id, engine := range registry.engines {
		if !seen[id] {
			removed = append(removed, engine)
			delete(registry.engines, id)
		}
	}
	registry.order = order
	engines := registry.listLocked()
	listeners := append([]func([]*countdown.Countdown){}, registry.listeners...)
	registry.mu.Unlock()

	for _, engine := range removed {
		engine.Close()
	}
	for _, listener := range listeners {
		listener(engines)
	}
}

// Get returns the engine for id.
func (registry *TimerRegistry) Get(id string) (*countdown.Countdown, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	engine, ok := registry.engines[id]
	return engine, ok
}

// Engines returns the engines in stored order.
func (registry *TimerRegistry) Engines() []*countdown.Countdown {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.listLocked()
}

// Close detaches from the store and releases every engine.
func (registry *TimerRegistry) Close() {
	registry.mu.Lock()
	cancel := registry.cancel
	registry.cancel = nil
	engines := registry.engines
	registry.engines = make(map[string]*countdown.Countdown)
	registry.order = nil
	registry.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	for _, engine := range engines {
		engine.Close()
	}
	registry.wg.Wait()
}

func (registry *TimerRegistry) listLocked() []*countdown.Countdown {
	engines := make([]*countdown.Countdown, 0, len(registry.order))
	for _, id := range registry.order {
		if engine, ok := registry.engines[id]; ok {
			engines = append(engines, engine)
		}
	}
	return engines
}

// watch forwards expiry to the notifier until the engine closes.
func (registry *TimerRegistry) watch(engine *countdown.Countdown) {
	events := engine.Subscribe(16)
	registry.wg.Add(1)
	go func() {
		defer registry.wg.Done()
		for event := range events {
			if event.Type != countdown.EventExpired {
				continue
			}
			registry.logger.Info("timer expired", zap.String("timer", event.TimerID))
			registry.notifier.Notify(event.Message, "")
		}
	}()
}
