// Package lock owns the mutex contract tasks acquire around their
// critical sections.
//
// Ownership boundary:
// - the error-returning Mutex / TimedMutex contracts
// - the default channel-semaphore CheckedMutex
// - hold-interval recording for serialization diagnostics
//
// Acquisition order among multiple waiters is whatever the runtime's
// channel scheduling provides. It is implementation-defined and must not
// be assumed FIFO.
package lock
