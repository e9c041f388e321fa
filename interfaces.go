package vtpool

import "context"

// ThreadPool is the contract a host framework drives: lifecycle, task
// submission and capacity queries.
//
// Callers must follow this lifecycle ordering:
//
//	New → Start → Execute (repeatable, concurrent) → Stop → Join
//
// Execute before Start or after Stop fails with ErrNotStarted or ErrStopped
// rather than dropping the task.
type ThreadPool interface {
	// Start creates the executor. Calling it again while started is a
	// no-op. Returns ErrStopped on a stopped pool, and an error wrapping
	// ErrExecutorCreate if the executor cannot be created.
	Start() error

	// Stop cancels every task context and rejects further submissions.
	// It does not wait; call Join for that. No-op unless started.
	Stop() error

	// Execute runs task asynchronously on its own goroutine. It never
	// blocks. Tasks run in no particular order, concurrently with each
	// other and with the caller.
	Execute(task Task) error

	// Join blocks until the pool is stopped and every task has returned.
	// If ctx ends first, the error wraps ErrJoinInterrupted and ctx.Err().
	Join(ctx context.Context) error

	// ThreadCount always returns UnboundedThreads.
	ThreadCount() int

	// IdleThreadCount always returns UnboundedThreads.
	IdleThreadCount() int

	// IsLowOnResources always returns false.
	IsLowOnResources() bool
}

// Pool is the ThreadPool returned by New, with introspection on top of the
// host contract.
type Pool interface {
	ThreadPool

	// TryExecute is Execute reporting acceptance as a bool.
	TryExecute(task Task) bool

	// Capacity reports Unbounded().
	Capacity() Capacity

	// State returns the current lifecycle state.
	State() State

	// Stats returns a snapshot of the task counters.
	Stats() Stats

	// Name returns the name set with WithName.
	Name() string
}
