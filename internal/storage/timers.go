package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"clockdeck/internal/core/model"
)

// ErrNotFound is returned by Get when no record has the id.
var ErrNotFound = errors.New("storage: record not found")

// ListTimers returns all timers in insertion order.
func (store *Store) ListTimers() ([]model.Timer, error) {
	var timers []model.Timer
	err := store.read(func(db *sql.DB) error {
		rows, err := db.Query(`SELECT id, name, duration FROM timers ORDER BY rowid`)
		if err != nil {
			return fmt.Errorf("query timers: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var timer model.Timer
			if err := rows.Scan(&timer.ID, &timer.Name, &timer.Duration); err != nil {
				return fmt.Errorf("scan timer: %w", err)
			}
			timers = append(timers, timer)
		}
		return rows.Err()
	})
	return timers, err
}

// GetTimer returns the timer with id or ErrNotFound.
func (store *Store) GetTimer(id string) (model.Timer, error) {
	var timer model.Timer
	err := store.read(func(db *sql.DB) error {
		row := db.QueryRow(`SELECT id, name, duration FROM timers WHERE id = ?`, id)
		if err := row.Scan(&timer.ID, &timer.Name, &timer.Duration); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("get timer %s: %w", id, err)
		}
		return nil
	})
	return timer, err
}

// AddTimer stores timer, replacing any record with the same id.
func (store *Store) AddTimer(timer model.Timer) error {
	return store.write(func(db *sql.DB) (bool, error) {
		_, err := db.Exec(`
			INSERT INTO timers (id, name, duration) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name, duration = excluded.duration`,
			timer.ID, timer.Name, timer.Duration)
		if err != nil {
			return false, fmt.Errorf("add timer %s: %w", timer.ID, err)
		}
		return true, nil
	}, store.publishTimers)
}

// UpdateTimer applies the non-nil fields of patch. A missing id is a no-op.
func (store *Store) UpdateTimer(id string, patch model.TimerPatch) error {
	var sets []string
	var args []any
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Duration != nil {
		sets = append(sets, "duration = ?")
		args = append(args, *patch.Duration)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	return store.write(func(db *sql.DB) (bool, error) {
		result, err := db.Exec(`UPDATE timers SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return false, fmt.Errorf("update timer %s: %w", id, err)
		}
		return changed(result), nil
	}, store.publishTimers)
}

// DeleteTimer removes the timer. A missing id is a no-op.
func (store *Store) DeleteTimer(id string) error {
	return store.write(func(db *sql.DB) (bool, error) {
		result, err := db.Exec(`DELETE FROM timers WHERE id = ?`, id)
		if err != nil {
			return false, fmt.Errorf("delete timer %s: %w", id, err)
		}
		return changed(result), nil
	}, store.publishTimers)
}

func (store *Store) publishTimers() {
	publish(store, store.timers, "timers", store.ListTimers)
}

// read runs fn while the store is open.
func (store *Store) read(fn func(db *sql.DB) error) error {
	store.mu.RLock()
	defer store.mu.RUnlock()
	if store.closed {
		return ErrClosed
	}
	return fn(store.db)
}

// write runs fn while the store is open and calls after when fn reports a
// change. after runs outside the store lock.
func (store *Store) write(fn func(db *sql.DB) (bool, error), after func()) error {
	store.mu.RLock()
	if store.closed {
		store.mu.RUnlock()
		return ErrClosed
	}
	modified, err := fn(store.db)
	store.mu.RUnlock()

	if err != nil {
		return err
	}
	if modified {
		after()
	}
	return nil
}

func changed(result sql.Result) bool {
	affected, err := result.RowsAffected()
	return err != nil || affected > 0
}
