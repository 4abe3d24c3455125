// Package task owns the mutex-guarded worker-task lifecycle.
//
// Ownership boundary:
// - per-task parameter blocks and their tri-state outcome
// - the launcher (allocate block, spawn worker, hand back a join handle)
// - the worker protocol: wait, acquire, wait holding, release
//
// A parameter block is exclusively owned by exactly one party at any
// instant: the launcher while it is being built, the worker while the
// task runs, the joiner after Join returns it. The transfer is carried by
// the handle's channel; no block is ever touched by two goroutines at
// once. The caller-supplied mutex is shared by reference across tasks and
// is never created, copied, or destroyed here.
//
// There is no cancellation. A spawned worker always runs to completion.
package task
