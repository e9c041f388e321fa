package vtpool

import "github.com/giantswarm/vtpool/internal/core"

// Sentinel errors for error inspection with errors.Is.
const (
	// ErrNotStarted is returned by Execute and Join when Start has not been
	// called.
	ErrNotStarted = core.ErrNotStarted

	// ErrStopped is returned by Execute after Stop, and by Start on a pool
	// that was already stopped.
	ErrStopped = core.ErrStopped

	// ErrNilTask is returned by Execute when the task is nil.
	ErrNilTask = core.ErrNilTask

	// ErrExecutorCreate is returned by Start, wrapping the factory error,
	// when the executor cannot be created. The pool stays NotStarted.
	ErrExecutorCreate = core.ErrExecutorCreate

	// ErrJoinInterrupted is returned by Join when the caller's context ends
	// first. The context error is wrapped as well, so
	// errors.Is(err, context.Canceled) also works.
	ErrJoinInterrupted = core.ErrJoinInterrupted

	// ErrJoinTimeout is returned by Join when the bound configured with
	// WithJoinTimeout elapses first.
	ErrJoinTimeout = core.ErrJoinTimeout
)
