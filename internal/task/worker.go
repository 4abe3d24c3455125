package task

import (
	"runtime"
	"time"

	"github.com/danmuck/taskmux/internal/lock"
	"github.com/danmuck/taskmux/internal/observability"
)

// runWorker executes one task to completion: wait, acquire, wait holding
// the lock, release. Strictly sequential, single attempt at every step,
// no retry. Whatever happens, the block goes back through done as the
// final act, after which the worker never touches it again.
func (l *Launcher) runWorker(p *Params, done chan<- *Params) {
	if p.PinOSThread {
		// Deliberately never unlocked: the OS thread is terminated when
		// this goroutine exits, so each pinned task gets a thread of its
		// own for life.
		runtime.LockOSThread()
	}

	wlog := l.log.With().Stringer("task", p.id).Logger()
	p.status = StatusPending

	var lockWait, lockHold time.Duration
	defer func() {
		observability.RecordTaskOutcome(p.status.String(), lockWait, lockHold)
		done <- p
	}()

	time.Sleep(p.WaitBeforeLock)

	acquireStart := time.Now()
	var err error
	if p.LockTimeout > 0 {
		err = p.Mutex.(lock.TimedMutex).LockFor(p.LockTimeout)
	} else {
		err = p.Mutex.Lock()
	}
	lockWait = time.Since(acquireStart)
	if err != nil {
		// Never acquired, nothing to release.
		wlog.Error().Err(err).Dur("waited", lockWait).Msg("mutex acquire failed")
		p.cause = err
		p.status = StatusFailure
		return
	}

	holdStart := time.Now()
	time.Sleep(p.WaitWhileLocked)

	if err := p.Mutex.Unlock(); err != nil {
		// The mutex is left in whatever state the failed release
		// produced, possibly still locked. No recovery is attempted.
		lockHold = time.Since(holdStart)
		wlog.Error().Err(err).Msg("mutex release failed")
		p.cause = err
		p.status = StatusFailure
		return
	}
	lockHold = time.Since(holdStart)

	p.status = StatusSuccess
	wlog.Debug().
		Dur("lock_wait", lockWait).
		Dur("lock_hold", lockHold).
		Msg("task complete")
}
