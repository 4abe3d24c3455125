package task

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/taskmux/internal/lock"
	"github.com/danmuck/taskmux/internal/testutil/testlog"
)

func TestSingleTaskSucceedsInIsolation(t *testing.T) {
	testlog.Start(t)
	l := NewLauncher(log.Logger)
	h, ok := l.Launch(lock.NewCheckedMutex(), 5*time.Millisecond, 5*time.Millisecond)
	if !ok {
		t.Fatalf("launch failed")
	}
	block := h.Join()
	if block.Status() != StatusSuccess {
		t.Fatalf("expected success, got %s (cause: %v)", block.Status(), block.Cause())
	}
	if block.Cause() != nil {
		t.Fatalf("unexpected cause on success: %v", block.Cause())
	}
}

func TestSingleTaskSucceedsWithZeroWaits(t *testing.T) {
	testlog.Start(t)
	l := NewLauncher(log.Logger)
	h, ok := l.Launch(lock.NewCheckedMutex(), 0, 0)
	if !ok {
		t.Fatalf("launch failed")
	}
	if got := h.Join().Status(); got != StatusSuccess {
		t.Fatalf("expected success, got %s", got)
	}
}

func TestJoinIsIdempotent(t *testing.T) {
	testlog.Start(t)
	l := NewLauncher(log.Logger)
	h, ok := l.Launch(lock.NewCheckedMutex(), 0, 0)
	if !ok {
		t.Fatalf("launch failed")
	}
	first := h.Join()
	second := h.Join()
	if first != second {
		t.Fatalf("join handed out two different blocks")
	}
}

func TestLockFailureSurfacesAfterJoin(t *testing.T) {
	testlog.Start(t)
	lockErr := errors.New("mutex invalid")
	l := NewLauncher(log.Logger)
	h, ok := l.Launch(&faultyMutex{lockErr: lockErr}, 0, 10*time.Millisecond)
	if !ok {
		t.Fatalf("launch failed")
	}
	block := h.Join()
	if block.Status() != StatusFailure {
		t.Fatalf("expected failure, got %s", block.Status())
	}
	if !errors.Is(block.Cause(), lockErr) {
		t.Fatalf("expected cause %v, got %v", lockErr, block.Cause())
	}
}

func TestUnlockFailureSurfacesAfterJoin(t *testing.T) {
	testlog.Start(t)
	unlockErr := errors.New("not owner")
	l := NewLauncher(log.Logger)
	h, ok := l.Launch(&faultyMutex{unlockErr: unlockErr}, 0, 5*time.Millisecond)
	if !ok {
		t.Fatalf("launch failed")
	}
	block := h.Join()
	if block.Status() != StatusFailure {
		t.Fatalf("expected failure, got %s", block.Status())
	}
	if !errors.Is(block.Cause(), unlockErr) {
		t.Fatalf("expected cause %v, got %v", unlockErr, block.Cause())
	}
}

func TestFailedReleaseIsNeverRetried(t *testing.T) {
	testlog.Start(t)
	mu := &countingMutex{unlockErr: errors.New("release refused")}
	l := NewLauncher(log.Logger)
	h, ok := l.Launch(mu, 0, 0)
	if !ok {
		t.Fatalf("launch failed")
	}
	block := h.Join()
	if block.Status() != StatusFailure {
		t.Fatalf("expected failure, got %s", block.Status())
	}
	// Single attempt at each step: the mutex stays however the failed
	// release left it, with no recovery unlock behind it.
	if mu.lockCalls != 1 || mu.unlockCalls != 1 {
		t.Fatalf("expected one lock and one unlock attempt, got %d/%d",
			mu.lockCalls, mu.unlockCalls)
	}
}

func TestBoundedAcquireTimesOutUnderContention(t *testing.T) {
	testlog.Start(t)
	mu := lock.NewCheckedMutex()
	if err := mu.Lock(); err != nil {
		t.Fatalf("pre-lock: %v", err)
	}
	defer func() {
		if err := mu.Unlock(); err != nil {
			t.Fatalf("release: %v", err)
		}
	}()

	l := NewLauncher(log.Logger)
	h, ok := l.LaunchParams(Params{
		Mutex:           mu,
		WaitWhileLocked: 5 * time.Millisecond,
		LockTimeout:     30 * time.Millisecond,
	})
	if !ok {
		t.Fatalf("launch failed")
	}
	block := h.Join()
	if block.Status() != StatusFailure {
		t.Fatalf("expected failure, got %s", block.Status())
	}
	if !errors.Is(block.Cause(), lock.ErrAcquireTimeout) {
		t.Fatalf("expected ErrAcquireTimeout, got %v", block.Cause())
	}
}

func TestPinnedTaskSucceeds(t *testing.T) {
	testlog.Start(t)
	l := NewLauncher(log.Logger)
	h, ok := l.LaunchParams(Params{
		Mutex:           lock.NewCheckedMutex(),
		WaitBeforeLock:  time.Millisecond,
		WaitWhileLocked: time.Millisecond,
		PinOSThread:     true,
	})
	if !ok {
		t.Fatalf("launch failed")
	}
	if got := h.Join().Status(); got != StatusSuccess {
		t.Fatalf("expected success, got %s", got)
	}
}

func TestStatusStrings(t *testing.T) {
	testlog.Start(t)
	cases := map[Status]string{
		StatusPending: "pending",
		StatusSuccess: "success",
		StatusFailure: "failure",
		Status(42):    "unknown",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Fatalf("Status(%d) = %q, want %q", status, got, want)
		}
	}
}
