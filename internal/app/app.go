// Package app keeps the clock engines in step with the stored records and
// turns form input into store mutations.
package app

import "clockdeck/internal/core/model"

// Store is the persistence surface used by the registries and forms.
type Store interface {
	GetTimer(id string) (model.Timer, error)
	AddTimer(timer model.Timer) error
	UpdateTimer(id string, patch model.TimerPatch) error
	DeleteTimer(id string) error
	SubscribeTimers(fn func([]model.Timer)) (func(), error)

	GetAlarm(id string) (model.Alarm, error)
	AddAlarm(alarm model.Alarm) error
	UpdateAlarm(id string, patch model.AlarmPatch) error
	DeleteAlarm(id string) error
	SubscribeAlarms(fn func([]model.Alarm)) (func(), error)
}

// Notifier delivers a desktop notification.
type Notifier interface {
	Notify(title, content string) bool
}

type noopNotifier struct{}

func (noopNotifier) Notify(string, string) bool { return false }

func wrap(value, low, high int) int {
	span := high - low + 1
	return low + ((value-low)%span+span)%span
}
