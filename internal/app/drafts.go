package app

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"clockdeck/internal/core/elapsed"
	"clockdeck/internal/core/model"
)

// TimerDraft is the editable state of the timer form.
type TimerDraft struct {
	ID      string
	Name    string
	Hours   int
	Minutes int
	Seconds int
}

// NewTimerDraft returns an empty form for a new timer.
func NewTimerDraft() TimerDraft {
	return TimerDraft{}
}

// EditTimerDraft pre-fills the form from a stored timer.
func EditTimerDraft(timer model.Timer) TimerDraft {
	hours, minutes, seconds := elapsed.Split(timer.Duration)
	return TimerDraft{
		ID:      timer.ID,
		Name:    timer.Name,
		Hours:   hours,
		Minutes: minutes,
		Seconds: seconds,
	}
}

// StepHours moves the hour stepper by delta, wrapping within 0..MaxHours.
func (draft *TimerDraft) StepHours(delta int) {
	draft.Hours = wrap(draft.Hours+delta, 0, model.MaxHours)
}

// StepMinutes moves the minute stepper by delta, wrapping within 0..MaxMinutes.
func (draft *TimerDraft) StepMinutes(delta int) {
	draft.Minutes = wrap(draft.Minutes+delta, 0, model.MaxMinutes)
}

// StepSeconds moves the second stepper by delta, wrapping within 0..MaxSeconds.
func (draft *TimerDraft) StepSeconds(delta int) {
	draft.Seconds = wrap(draft.Seconds+delta, 0, model.MaxSeconds)
}

// Duration returns the entered duration in ticks.
func (draft TimerDraft) Duration() int64 {
	return elapsed.FromHMS(draft.Hours, draft.Minutes, draft.Seconds)
}

// Timer returns the record the form describes.
func (draft TimerDraft) Timer() model.Timer {
	return model.Timer{ID: draft.ID, Name: strings.TrimSpace(draft.Name), Duration: draft.Duration()}
}

// Save persists the draft. It returns false without error when the form is
// incomplete so the dialog can stay open.
func (draft *TimerDraft) Save(store Store) (bool, error) {
	timer := draft.Timer()
	if !timer.Valid() {
		return false, nil
	}

	if draft.ID == "" {
		timer.ID = uuid.NewString()
		if err := store.AddTimer(timer); err != nil {
			return false, fmt.Errorf("add timer: %w", err)
		}
		draft.ID = timer.ID
		return true, nil
	}

	if err := store.UpdateTimer(timer.ID, model.TimerPatch{Name: &timer.Name, Duration: &timer.Duration}); err != nil {
		return false, fmt.Errorf("update timer: %w", err)
	}
	return true, nil
}

// AlarmDraft is the editable state of the alarm form.
type AlarmDraft struct {
	ID            string
	Title         string
	EndAt         model.EndAt
	RepeatOn      []model.Day
	RepeatEnabled bool
	IsActive      bool
	Chime         model.Chime
	Snooze        model.SnoozeOption
}

// NewAlarmDraft returns the form defaults for a new alarm: 12:00 AM on
// every day, repeating, active.
func NewAlarmDraft(chime model.Chime, snooze model.SnoozeOption) AlarmDraft {
	return AlarmDraft{
		EndAt:         model.EndAt{Hour: 12, Minute: 0, Phase: model.AM},
		RepeatOn:      append([]model.Day(nil), model.Days...),
		RepeatEnabled: true,
		IsActive:      true,
		Chime:         chime,
		Snooze:        snooze,
	}
}

// EditAlarmDraft pre-fills the form from a stored alarm.
func EditAlarmDraft(stored model.Alarm) AlarmDraft {
	return AlarmDraft{
		ID:            stored.ID,
		Title:         stored.Title,
		EndAt:         stored.EndAt,
		RepeatOn:      append([]model.Day(nil), stored.RepeatOn...),
		RepeatEnabled: stored.RepeatEnabled,
		IsActive:      stored.IsActive,
		Chime:         stored.Chime,
		Snooze:        stored.Snooze,
	}
}

// StepHour moves the hour by delta, wrapping within 1..12.
func (draft *AlarmDraft) StepHour(delta int) {
	draft.EndAt.Hour = wrap(draft.EndAt.Hour+delta, 1, 12)
}

// StepMinute moves the minute by delta, wrapping within 0..59.
func (draft *AlarmDraft) StepMinute(delta int) {
	draft.EndAt.Minute = wrap(draft.EndAt.Minute+delta, 0, 59)
}

// TogglePhase switches between AM and PM.
func (draft *AlarmDraft) TogglePhase() {
	draft.EndAt.Phase = draft.EndAt.Phase.Toggle()
}

// ToggleDay adds or removes day, keeping display order.
func (draft *AlarmDraft) ToggleDay(day model.Day) {
	selected := make(map[model.Day]bool, len(draft.RepeatOn)+1)
	for _, current := range draft.RepeatOn {
		selected[current] = true
	}
	selected[day] = !selected[day]

	days := make([]model.Day, 0, len(model.Days))
	for _, candidate := range model.Days {
		if selected[candidate] {
			days = append(days, candidate)
		}
	}
	draft.RepeatOn = days
}

// Alarm returns the record the form describes.
func (draft AlarmDraft) Alarm() model.Alarm {
	return model.Alarm{
		ID:            draft.ID,
		Title:         strings.TrimSpace(draft.Title),
		EndAt:         draft.EndAt,
		RepeatOn:      draft.RepeatOn,
		RepeatEnabled: draft.RepeatEnabled,
		IsActive:      draft.IsActive,
		Chime:         draft.Chime,
		Snooze:        draft.Snooze,
	}
}

// Save persists the draft. New alarms are stored active. It returns false
// without error when the form is incomplete.
func (draft *AlarmDraft) Save(store Store) (bool, error) {
	record := draft.Alarm()
	if !record.Valid() {
		return false, nil
	}

	if draft.ID == "" {
		record.ID = uuid.NewString()
		record.IsActive = true
		if err := store.AddAlarm(record); err != nil {
			return false, fmt.Errorf("add alarm: %w", err)
		}
		draft.ID = record.ID
		return true, nil
	}

	patch := model.AlarmPatch{
		Title:         &record.Title,
		EndAt:         &record.EndAt,
		RepeatOn:      &record.RepeatOn,
		RepeatEnabled: &record.RepeatEnabled,
		Chime:         &record.Chime,
		Snooze:        &record.Snooze,
	}
	if err := store.UpdateAlarm(record.ID, patch); err != nil {
		return false, fmt.Errorf("update alarm: %w", err)
	}
	return true, nil
}
