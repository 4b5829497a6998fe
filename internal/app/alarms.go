package app

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"clockdeck/internal/core/alarm"
	"clockdeck/internal/core/model"
	"clockdeck/internal/storage"
)

// AlarmRegistry owns one armed alarm engine per stored alarm.
type AlarmRegistry struct {
	mu        sync.Mutex
	config    model.EngineConfig
	options   alarm.Options
	notifier  Notifier
	logger    *zap.Logger
	engines   map[string]*alarm.Engine
	order     []string
	listeners []func([]*alarm.Engine)
	cancel    func()
	wg        sync.WaitGroup
}

// NewAlarmRegistry creates an empty registry. options supplies the clock
// and chime player shared by every engine.
func NewAlarmRegistry(config model.EngineConfig, options alarm.Options, notifier Notifier, logger *zap.Logger) *AlarmRegistry {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlarmRegistry{
		config:   config,
		options:  options,
		notifier: notifier,
		logger:   logger,
		engines:  make(map[string]*alarm.Engine),
	}
}

// Attach subscribes the registry to the store's alarms table.
func (registry *AlarmRegistry) Attach(store Store) error {
	cancel, err := store.SubscribeAlarms(registry.Sync)
	if err != nil {
		return fmt.Errorf("subscribe alarms: %w", err)
	}
	registry.mu.Lock()
	registry.cancel = cancel
	registry.mu.Unlock()
	return nil
}

// OnChange registers fn to receive the engine list after every sync.
func (registry *AlarmRegistry) OnChange(fn func([]*alarm.Engine)) {
	registry.mu.Lock()
	registry.listeners = append(registry.listeners, fn)
	engines := registry.listLocked()
	registry.mu.Unlock()
	fn(engines)
}

// Sync reconciles engines with the stored alarms. New engines are armed
// immediately.
func (registry *AlarmRegistry) Sync(alarms []model.Alarm) {
	registry.mu.Lock()
	seen := make(map[string]bool, len(alarms))
	order := make([]string, 0, len(alarms))
	var added []*alarm.Engine
	var redefined []redefinition
	for _, definition := range alarms {
		seen[definition.ID] = true
		order = append(order, definition.ID)
		if engine, ok := registry.engines[definition.ID]; ok {
			redefined = append(redefined, redefinition{engine, definition})
			continue
		}
		engine := alarm.New(definition, registry.config, registry.options)
		registry.engines[definition.ID] = engine
		registry.watch(engine)
		added = append(added, engine)
	}

	var removed []*alarm.Engine
	for id, engine := range registry.engines {
		if !seen[id] {
			removed = append(removed, engine)
			delete(registry.engines, id)
		}
	}
	registry.order = order
	engines := registry.listLocked()
	listeners := append([]func([]*alarm.Engine){}, registry.listeners...)
	registry.mu.Unlock()

	for _, engine := range removed {
		engine.Close()
	}
	for _, change := range redefined {
		change.engine.Redefine(change.definition)
	}
	for _, engine := range added {
		engine.Start()
	}
	for _, listener := range listeners {
		listener(engines)
	}
}

type redefinition struct {
	engine     *alarm.Engine
	definition model.Alarm
}

// Get returns the engine for id.
func (registry *AlarmRegistry) Get(id string) (*alarm.Engine, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	engine, ok := registry.engines[id]
	return engine, ok
}

// Engines returns the engines in stored order.
func (registry *AlarmRegistry) Engines() []*alarm.Engine {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.listLocked()
}

// Upcoming returns the engines of active alarms ordered by next fire time.
func (registry *AlarmRegistry) Upcoming() []*alarm.Engine {
	var active []*alarm.Engine
	for _, engine := range registry.Engines() {
		if engine.Definition().IsActive {
			active = append(active, engine)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Status().FireAt.Before(active[j].Status().FireAt)
	})
	return active
}

// Close detaches from the store and releases every engine.
func (registry *AlarmRegistry) Close() {
	registry.mu.Lock()
	cancel := registry.cancel
	registry.cancel = nil
	engines := registry.engines
	registry.engines = make(map[string]*alarm.Engine)
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

func (registry *AlarmRegistry) listLocked() []*alarm.Engine {
	engines := make([]*alarm.Engine, 0, len(registry.order))
	for _, id := range registry.order {
		if engine, ok := registry.engines[id]; ok {
			engines = append(engines, engine)
		}
	}
	return engines
}

func (registry *AlarmRegistry) watch(engine *alarm.Engine) {
	events := engine.Subscribe(16)
	registry.wg.Add(1)
	go func() {
		defer registry.wg.Done()
		for event := range events {
			if event.Type != alarm.EventNotify {
				continue
			}
			registry.logger.Info("alarm ringing", zap.String("alarm", event.AlarmID))
			registry.notifier.Notify(event.Message, "")
		}
	}()
}

// ToggleActive flips the stored isActive flag of the alarm. A missing
// alarm is a no-op.
func ToggleActive(store Store, id string) error {
	current, err := store.GetAlarm(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("toggle alarm %s: %w", id, err)
	}
	active := !current.IsActive
	if err := store.UpdateAlarm(id, model.AlarmPatch{IsActive: &active}); err != nil {
		return fmt.Errorf("toggle alarm %s: %w", id, err)
	}
	return nil
}
