// Package storage persists timers, alarms and user settings.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"clockdeck/internal/core/model"
)

const databaseFileName = "userData.db"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage: store closed")

// Store is the SQLite-backed record store for timers and alarms.
// Every mutation republishes the affected table to its subscribers.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool

	timers *feed[model.Timer]
	alarms *feed[model.Alarm]
}

// DatabasePath returns the default database location for appName.
func DatabasePath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, databaseFileName), nil
}

// Open opens or creates the database file at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps writers serialized inside the process.
	db.SetMaxOpenConns(1)

	store := &Store{
		db:     db,
		path:   path,
		logger: logger,
		timers: newFeed[model.Timer](),
		alarms: newFeed[model.Alarm](),
	}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("store opened", zap.String("path", path))
	return store, nil
}

func (store *Store) initialize() error {
	timersTable := `
	CREATE TABLE IF NOT EXISTS timers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		duration INTEGER NOT NULL
	);`

	alarmsTable := `
	CREATE TABLE IF NOT EXISTS alarms (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		hour INTEGER NOT NULL,
		minute INTEGER NOT NULL,
		phase TEXT NOT NULL,
		repeat_on TEXT NOT NULL DEFAULT '',
		repeat_enabled INTEGER NOT NULL DEFAULT 0,
		is_active INTEGER NOT NULL DEFAULT 1,
		chime_id TEXT NOT NULL,
		snooze_id TEXT NOT NULL
	);`

	for _, table := range []string{timersTable, alarmsTable} {
		if _, err := store.db.Exec(table); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// Path returns the database file path.
func (store *Store) Path() string {
	return store.path
}

// Close closes the database and drops all subscribers.
func (store *Store) Close() error {
	store.mu.Lock()
	if store.closed {
		store.mu.Unlock()
		return nil
	}
	store.closed = true
	store.mu.Unlock()

	store.timers.clear()
	store.alarms.clear()
	return store.db.Close()
}

// SubscribeTimers calls fn with the full timer list now and after every
// change to the timers table. The returned cancel function is idempotent.
func (store *Store) SubscribeTimers(fn func([]model.Timer)) (func(), error) {
	return subscribe(store, store.timers, store.ListTimers, fn)
}

// SubscribeAlarms calls fn with the full alarm list now and after every
// change to the alarms table. The returned cancel function is idempotent.
func (store *Store) SubscribeAlarms(fn func([]model.Alarm)) (func(), error) {
	return subscribe(store, store.alarms, store.ListAlarms, fn)
}

func subscribe[T any](store *Store, target *feed[T], list func() ([]T, error), fn func([]T)) (func(), error) {
	if store.isClosed() {
		return nil, ErrClosed
	}
	id := target.add(fn)
	if err := target.replay(id, list); err != nil {
		target.remove(id)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() { target.remove(id) })
	}, nil
}

func publish[T any](store *Store, target *feed[T], table string, list func() ([]T, error)) {
	if !target.active() {
		return
	}
	if err := target.publish(list); err != nil {
		store.logger.Warn("republish failed", zap.String("table", table), zap.Error(err))
	}
}

func (store *Store) isClosed() bool {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.closed
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
