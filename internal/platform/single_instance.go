package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock file.
type InstanceGuard struct {
	mu       sync.Mutex
	path     string
	file     *os.File
	released bool
}

// AcquireSingleInstance locks dir/<appName>.lock without blocking and
// records the current pid in it.
func AcquireSingleInstance(dir, appName string) (*InstanceGuard, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	path := filepath.Join(dir, appName+".lock")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := tryLock(file); err != nil {
		file.Close()
		if errors.Is(err, errLocked) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}

	if err := file.Truncate(0); err == nil {
		_, _ = file.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0)
	}
	return &InstanceGuard{path: path, file: file}, nil
}

// Release frees the lock. Releasing twice is a no-op.
func (guard *InstanceGuard) Release() error {
	if guard == nil {
		return nil
	}
	guard.mu.Lock()
	defer guard.mu.Unlock()
	if guard.released {
		return nil
	}
	guard.released = true

	unlockErr := unlock(guard.file)
	closeErr := guard.file.Close()
	return errors.Join(unlockErr, closeErr)
}

// Path returns the lock file path.
func (guard *InstanceGuard) Path() string {
	if guard == nil {
		return ""
	}
	return guard.path
}
