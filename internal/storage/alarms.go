package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"clockdeck/internal/core/model"
)

const alarmColumns = `id, title, hour, minute, phase, repeat_on, repeat_enabled, is_active, chime_id, snooze_id`

type rowScanner interface {
	Scan(dest ...any) error
}

// ListAlarms returns all alarms in insertion order.
func (store *Store) ListAlarms() ([]model.Alarm, error) {
	var alarms []model.Alarm
	err := store.read(func(db *sql.DB) error {
		rows, err := db.Query(`SELECT ` + alarmColumns + ` FROM alarms ORDER BY rowid`)
		if err != nil {
			return fmt.Errorf("query alarms: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			alarm, err := scanAlarm(rows)
			if err != nil {
				return fmt.Errorf("scan alarm: %w", err)
			}
			alarms = append(alarms, alarm)
		}
		return rows.Err()
	})
	return alarms, err
}

// GetAlarm returns the alarm with id or ErrNotFound.
func (store *Store) GetAlarm(id string) (model.Alarm, error) {
	var alarm model.Alarm
	err := store.read(func(db *sql.DB) error {
		var err error
		alarm, err = scanAlarm(db.QueryRow(`SELECT `+alarmColumns+` FROM alarms WHERE id = ?`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get alarm %s: %w", id, err)
		}
		return nil
	})
	return alarm, err
}

// AddAlarm stores alarm, replacing any record with the same id.
func (store *Store) AddAlarm(alarm model.Alarm) error {
	return store.write(func(db *sql.DB) (bool, error) {
		_, err := db.Exec(`
			INSERT INTO alarms (`+alarmColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				hour = excluded.hour,
				minute = excluded.minute,
				phase = excluded.phase,
				repeat_on = excluded.repeat_on,
				repeat_enabled = excluded.repeat_enabled,
				is_active = excluded.is_active,
				chime_id = excluded.chime_id,
				snooze_id = excluded.snooze_id`,
			alarm.ID,
			alarm.Title,
			alarm.EndAt.Hour,
			alarm.EndAt.Minute,
			string(alarm.EndAt.Phase),
			joinDays(alarm.RepeatOn),
			boolToInt(alarm.RepeatEnabled),
			boolToInt(alarm.IsActive),
			alarm.Chime.ID,
			alarm.Snooze.ID,
		)
		if err != nil {
			return false, fmt.Errorf("add alarm %s: %w", alarm.ID, err)
		}
		return true, nil
	}, store.publishAlarms)
}

// UpdateAlarm applies the non-nil fields of patch. A missing id is a no-op.
func (store *Store) UpdateAlarm(id string, patch model.AlarmPatch) error {
	var sets []string
	var args []any
	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.EndAt != nil {
		set("hour", patch.EndAt.Hour)
		set("minute", patch.EndAt.Minute)
		set("phase", string(patch.EndAt.Phase))
	}
	if patch.RepeatOn != nil {
		set("repeat_on", joinDays(*patch.RepeatOn))
	}
	if patch.RepeatEnabled != nil {
		set("repeat_enabled", boolToInt(*patch.RepeatEnabled))
	}
	if patch.IsActive != nil {
		set("is_active", boolToInt(*patch.IsActive))
	}
	if patch.Chime != nil {
		set("chime_id", patch.Chime.ID)
	}
	if patch.Snooze != nil {
		set("snooze_id", patch.Snooze.ID)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	return store.write(func(db *sql.DB) (bool, error) {
		result, err := db.Exec(`UPDATE alarms SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return false, fmt.Errorf("update alarm %s: %w", id, err)
		}
		return changed(result), nil
	}, store.publishAlarms)
}

// DeleteAlarm removes the alarm. A missing id is a no-op.
func (store *Store) DeleteAlarm(id string) error {
	return store.write(func(db *sql.DB) (bool, error) {
		result, err := db.Exec(`DELETE FROM alarms WHERE id = ?`, id)
		if err != nil {
			return false, fmt.Errorf("delete alarm %s: %w", id, err)
		}
		return changed(result), nil
	}, store.publishAlarms)
}

func (store *Store) publishAlarms() {
	publish(store, store.alarms, "alarms", store.ListAlarms)
}

func scanAlarm(row rowScanner) (model.Alarm, error) {
	var (
		alarm         model.Alarm
		phase         string
		repeatOn      string
		repeatEnabled int
		isActive      int
		chimeID       string
		snoozeID      string
	)
	err := row.Scan(
		&alarm.ID,
		&alarm.Title,
		&alarm.EndAt.Hour,
		&alarm.EndAt.Minute,
		&phase,
		&repeatOn,
		&repeatEnabled,
		&isActive,
		&chimeID,
		&snoozeID,
	)
	if err != nil {
		return model.Alarm{}, err
	}
	alarm.EndAt.Phase = model.Meridian(phase)
	alarm.RepeatOn = splitDays(repeatOn)
	alarm.RepeatEnabled = repeatEnabled != 0
	alarm.IsActive = isActive != 0
	alarm.Chime = model.ChimeByID(chimeID)
	alarm.Snooze = model.SnoozeByID(snoozeID)
	return alarm, nil
}

func joinDays(days []model.Day) string {
	parts := make([]string, len(days))
	for index, day := range days {
		parts[index] = string(day)
	}
	return strings.Join(parts, ",")
}

func splitDays(value string) []model.Day {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	days := make([]model.Day, len(parts))
	for index, part := range parts {
		days[index] = model.Day(part)
	}
	return days
}
