package lock

import (
	"time"

	"github.com/danmuck/taskmux/internal/syncutil"
)

// Interval is one completed hold of a mutex, acquire to release.
type Interval struct {
	From time.Time
	To   time.Time
}

// Overlaps reports whether two intervals share any instant.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.From.Before(other.To) && other.From.Before(iv.To)
}

// RecordingMutex wraps a TimedMutex and records each completed hold
// interval. Intervals close on successful release only; a failed unlock
// records nothing.
type RecordingMutex struct {
	inner TimedMutex

	mu        syncutil.Mutex
	openedAt  time.Time
	intervals []Interval
}

func NewRecordingMutex(inner TimedMutex) *RecordingMutex {
	return &RecordingMutex{inner: inner}
}

func (m *RecordingMutex) Lock() error {
	if err := m.inner.Lock(); err != nil {
		return err
	}
	m.markAcquired()
	return nil
}

func (m *RecordingMutex) LockFor(timeout time.Duration) error {
	if err := m.inner.LockFor(timeout); err != nil {
		return err
	}
	m.markAcquired()
	return nil
}

func (m *RecordingMutex) Unlock() error {
	// Snapshot the close instant before the release lets a waiter in.
	m.mu.Lock()
	opened := m.openedAt
	closed := time.Now()
	m.mu.Unlock()

	if err := m.inner.Unlock(); err != nil {
		return err
	}

	m.mu.Lock()
	m.intervals = append(m.intervals, Interval{From: opened, To: closed})
	m.mu.Unlock()
	return nil
}

// Intervals returns a copy of the completed hold intervals.
func (m *RecordingMutex) Intervals() []Interval {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Interval, len(m.intervals))
	copy(out, m.intervals)
	return out
}

// FirstOverlap returns the indices of the first pair of overlapping
// intervals, or ok=false when every pair is disjoint.
func (m *RecordingMutex) FirstOverlap() (int, int, bool) {
	ivs := m.Intervals()
	for i := 0; i < len(ivs); i++ {
		for j := i + 1; j < len(ivs); j++ {
			if ivs[i].Overlaps(ivs[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func (m *RecordingMutex) markAcquired() {
	m.mu.Lock()
	m.openedAt = time.Now()
	m.mu.Unlock()
}
