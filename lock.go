// OS-level file locking for cross-process coordination.
//
// The storage engine takes an exclusive, non-blocking lock on
// STORAGE_FILE at startup. A second server started against the same
// document folder observes the lock held and fails startup instead of
// racing the first instance's free list and index table to disk.
package docindex

import (
	"errors"
	"os"
	"sync"
)

// ErrAlreadyLocked is returned by fileLock.TryLock when another
// process already holds the lock.
var ErrAlreadyLocked = errors.New("docindex: storage file is locked by another server")

// fileLock wraps flock(2) / LockFileEx with a mutex guarding the file
// handle's lifetime, so Fd() cannot race with Close() on the same
// *os.File.
type fileLock struct {
	mu sync.Mutex
	f  *os.File
}

// TryLock acquires an exclusive, non-blocking lock. Returns
// ErrAlreadyLocked if another process holds it.
func (l *fileLock) TryLock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	return l.tryLock()
}

// Unlock releases the lock. Safe to call on an unlocked or torn-down
// handle.
func (l *fileLock) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	return l.unlock()
}

// setFile swaps the underlying file handle. Passing nil drains any
// in-flight lock call and disables further locking.
func (l *fileLock) setFile(f *os.File) {
	l.mu.Lock()
	l.f = f
	l.mu.Unlock()
}
