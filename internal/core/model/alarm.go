package model

import (
	"fmt"
	"strings"
	"time"
)

// Meridian is the half of a 12-hour clock.
type Meridian string

const (
	AM Meridian = "AM"
	PM Meridian = "PM"
)

// Toggle returns the opposite meridian.
func (phase Meridian) Toggle() Meridian {
	if phase == AM {
		return PM
	}
	return AM
}

// Day is a two-letter weekday code.
type Day string

const (
	Sunday    Day = "Su"
	Monday    Day = "Mo"
	Tuesday   Day = "Tu"
	Wednesday Day = "We"
	Thursday  Day = "Th"
	Friday    Day = "Fr"
	Saturday  Day = "Sa"
)

// Days lists weekdays in display order.
var Days = []Day{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Weekday maps a Day to time.Weekday.
func (day Day) Weekday() (time.Weekday, bool) {
	for index, candidate := range Days {
		if candidate == day {
			return time.Weekday(index), true
		}
	}
	return time.Sunday, false
}

// EndAt is a 12-hour wall clock time of day.
type EndAt struct {
	Hour   int
	Minute int
	Phase  Meridian
}

// Valid reports whether the fields are within clock range.
func (endAt EndAt) Valid() bool {
	return endAt.Hour >= 1 && endAt.Hour <= 12 &&
		endAt.Minute >= 0 && endAt.Minute <= 59 &&
		(endAt.Phase == AM || endAt.Phase == PM)
}

// Hour24 converts the stored hour to 0-23.
func (endAt EndAt) Hour24() int {
	hour := endAt.Hour
	if hour == 12 {
		hour = 0
	}
	if endAt.Phase == PM {
		hour += 12
	}
	return hour
}

// ParseEndAt reads "7:30 PM", "07:30pm" or a 24-hour "19:30".
func ParseEndAt(value string) (EndAt, error) {
	text := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(value), " ", ""))
	phase := Meridian("")
	for _, candidate := range []Meridian{AM, PM} {
		if trimmed, ok := strings.CutSuffix(text, string(candidate)); ok {
			text, phase = trimmed, candidate
		}
	}
	var hour, minute int
	if _, err := fmt.Sscanf(text, "%d:%d", &hour, &minute); err != nil {
		return EndAt{}, fmt.Errorf("parse time %q: %w", value, err)
	}
	if phase == "" {
		if hour < 0 || hour > 23 {
			return EndAt{}, fmt.Errorf("parse time %q: hour out of range", value)
		}
		phase = AM
		if hour >= 12 {
			phase = PM
		}
		hour %= 12
		if hour == 0 {
			hour = 12
		}
	}
	endAt := EndAt{Hour: hour, Minute: minute, Phase: phase}
	if !endAt.Valid() {
		return EndAt{}, fmt.Errorf("parse time %q: out of range", value)
	}
	return endAt, nil
}

// ParseDays reads a comma separated list of day codes, case-insensitive.
func ParseDays(value string) ([]Day, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	var days []Day
	for _, part := range strings.Split(value, ",") {
		code := strings.TrimSpace(part)
		matched := false
		for _, day := range Days {
			if strings.EqualFold(string(day), code) {
				days = append(days, day)
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("unknown day %q", code)
		}
	}
	return days, nil
}

func (endAt EndAt) String() string {
	return fmt.Sprintf("%02d:%02d %s", endAt.Hour, endAt.Minute, endAt.Phase)
}

// Alarm is a stored recurring alarm definition.
type Alarm struct {
	ID            string
	Title         string
	EndAt         EndAt
	RepeatOn      []Day
	RepeatEnabled bool
	IsActive      bool
	Chime         Chime
	Snooze        SnoozeOption
}

// Valid reports whether the alarm may be persisted.
func (alarm Alarm) Valid() bool {
	return strings.TrimSpace(alarm.Title) != "" && alarm.EndAt.Valid()
}

// RepeatsOn reports whether the day is highlighted on the card.
func (alarm Alarm) RepeatsOn(day Day) bool {
	if !alarm.RepeatEnabled {
		return false
	}
	for _, candidate := range alarm.RepeatOn {
		if candidate == day {
			return true
		}
	}
	return false
}

// AlarmPatch holds the fields an update replaces; nil fields are left untouched.
type AlarmPatch struct {
	Title         *string
	EndAt         *EndAt
	RepeatOn      *[]Day
	RepeatEnabled *bool
	IsActive      *bool
	Chime         *Chime
	Snooze        *SnoozeOption
}
