package task

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/danmuck/taskmux/internal/lock"
	"github.com/danmuck/taskmux/internal/observability"
)

var (
	ErrNilMutex               = errors.New("task: nil mutex")
	ErrNegativeWait           = errors.New("task: negative wait duration")
	ErrLockTimeoutUnsupported = errors.New("task: mutex does not support bounded acquisition")
)

// Launcher allocates parameter blocks and spawns workers. One worker
// goroutine per launch, created on demand, never pooled or reused.
type Launcher struct {
	log zerolog.Logger

	// seams for failure injection in tests
	alloc func() (*Params, error)
	spawn func(run func()) error
}

func NewLauncher(logger zerolog.Logger) *Launcher {
	return &Launcher{
		log: logger,
		alloc: func() (*Params, error) {
			return &Params{id: uuid.New()}, nil
		},
		spawn: func(run func()) error {
			go run()
			return nil
		},
	}
}

// Launch starts one task that sleeps waitBeforeLock, acquires mu with no
// timeout, holds it for waitWhileLocked, and releases it. On ok=false no
// worker exists and there is nothing to join; the failure has already
// been logged.
func (l *Launcher) Launch(mu lock.Mutex, waitBeforeLock, waitWhileLocked time.Duration) (*Handle, bool) {
	return l.LaunchParams(Params{
		Mutex:           mu,
		WaitBeforeLock:  waitBeforeLock,
		WaitWhileLocked: waitWhileLocked,
	})
}

// LaunchParams starts one task from a fully specified parameter set.
// Misconfiguration, allocation failure, and spawn failure are all
// synchronous: logged, counted, ok=false, no worker created. A block
// allocated before a spawn failure never left the launcher, so the
// launcher is the one that lets it go.
func (l *Launcher) LaunchParams(p Params) (*Handle, bool) {
	if err := validate(p); err != nil {
		l.log.Error().Err(err).Msg("launch rejected")
		observability.RecordLaunchRejected("invalid_params")
		return nil, false
	}

	block, err := l.alloc()
	if err != nil {
		l.log.Error().Err(err).Msg("parameter block allocation failed")
		observability.RecordLaunchRejected("alloc")
		return nil, false
	}
	block.Mutex = p.Mutex
	block.WaitBeforeLock = p.WaitBeforeLock
	block.WaitWhileLocked = p.WaitWhileLocked
	block.LockTimeout = p.LockTimeout
	block.PinOSThread = p.PinOSThread
	block.status = StatusPending

	h := &Handle{id: block.id, done: make(chan *Params, 1)}
	if err := l.spawn(func() { l.runWorker(block, h.done) }); err != nil {
		l.log.Error().Err(err).Stringer("task", block.id).Msg("worker spawn failed")
		observability.RecordLaunchRejected("spawn")
		return nil, false
	}

	observability.RecordTaskLaunched()
	l.log.Debug().
		Stringer("task", block.id).
		Dur("wait_before_lock", block.WaitBeforeLock).
		Dur("wait_while_locked", block.WaitWhileLocked).
		Msg("task launched")
	return h, true
}

func validate(p Params) error {
	if p.Mutex == nil {
		return ErrNilMutex
	}
	if p.WaitBeforeLock < 0 || p.WaitWhileLocked < 0 {
		return ErrNegativeWait
	}
	if p.LockTimeout > 0 {
		if _, ok := p.Mutex.(lock.TimedMutex); !ok {
			return ErrLockTimeoutUnsupported
		}
	}
	return nil
}
