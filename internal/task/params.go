package task

import (
	"time"

	"github.com/google/uuid"

	"github.com/danmuck/taskmux/internal/lock"
)

// Params is the per-task parameter block handed across the goroutine
// boundary. The launcher populates the exported fields, the worker reads
// them and records the outcome, the joiner inspects the outcome after
// Join hands the block back.
type Params struct {
	// Mutex is the caller-owned lock guarding the critical section. It is
	// shared by reference, never owned by the task, and must outlive every
	// task that references it.
	Mutex lock.Mutex

	// WaitBeforeLock is slept before attempting acquisition.
	WaitBeforeLock time.Duration

	// WaitWhileLocked is slept while holding the lock. This is the
	// critical section; contending tasks block for its entire duration.
	WaitWhileLocked time.Duration

	// LockTimeout bounds acquisition when positive and requires a
	// lock.TimedMutex. Zero keeps the default unbounded wait.
	LockTimeout time.Duration

	// PinOSThread runs the worker on a dedicated OS thread for the
	// task's whole life.
	PinOSThread bool

	id     uuid.UUID
	status Status
	cause  error
}

// ID is the task identity, stable from launch through join.
func (p *Params) ID() uuid.UUID { return p.id }

// Status is the recorded outcome. Meaningful only after Join.
func (p *Params) Status() Status { return p.status }

// Cause is the error behind a StatusFailure outcome, nil otherwise.
func (p *Params) Cause() error { return p.cause }
