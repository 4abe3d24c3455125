package lock

import (
	"errors"
	"time"
)

var (
	ErrNotLocked      = errors.New("lock: mutex is not locked")
	ErrAcquireTimeout = errors.New("lock: acquire timed out")
)

// Mutex is the lock contract a task acquires around its critical section.
// Lock blocks without bound until the mutex is available.
type Mutex interface {
	Lock() error
	Unlock() error
}

// TimedMutex extends Mutex with bounded-wait acquisition. The unbounded
// Lock remains the default; LockFor is additive.
type TimedMutex interface {
	Mutex
	LockFor(timeout time.Duration) error
}

// CheckedMutex is the default TimedMutex, backed by a one-slot channel
// semaphore. Unlike sync.Mutex it reports misuse as an error instead of
// panicking: unlocking a mutex that is not held returns ErrNotLocked.
// It does not track the owning goroutine, so an unlock from a goroutine
// other than the one that locked it succeeds silently.
type CheckedMutex struct {
	sema chan struct{}
}

func NewCheckedMutex() *CheckedMutex {
	return &CheckedMutex{sema: make(chan struct{}, 1)}
}

// Lock blocks until the mutex is acquired. There is no timeout.
func (m *CheckedMutex) Lock() error {
	m.sema <- struct{}{}
	return nil
}

// LockFor blocks until the mutex is acquired or timeout elapses.
// A non-positive timeout degenerates to an unbounded Lock.
func (m *CheckedMutex) LockFor(timeout time.Duration) error {
	if timeout <= 0 {
		return m.Lock()
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case m.sema <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrAcquireTimeout
	}
}

// Unlock releases the mutex. Unlocking a mutex that is not held returns
// ErrNotLocked and leaves the mutex unchanged.
func (m *CheckedMutex) Unlock() error {
	select {
	case <-m.sema:
		return nil
	default:
		return ErrNotLocked
	}
}
