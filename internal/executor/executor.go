package executor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/vtpool/internal/sentinel"
)

// ErrShutdown is returned by Submit after ShutdownNow has been called. It is
// also the cancellation cause of the context passed to tasks, so a task can
// tell shutdown apart from its own deadlines via context.Cause.
const ErrShutdown = sentinel.Error("executor is shut down")

// Task is a unit of work. ctx is canceled when the executor shuts down;
// long-running tasks must watch ctx.Done() to be interruptible.
type Task func(ctx context.Context)

// PanicHandler receives the value recovered from a panicking task together
// with the goroutine stack captured at the point of recovery.
type PanicHandler func(recovered any, stack []byte)

// Stats is a point-in-time snapshot of executor counters. The counters are
// read independently, so a snapshot taken while tasks are running may be
// off by the handful of tasks that changed state between reads.
type Stats struct {
	// Submitted counts tasks accepted by Submit.
	Submitted uint64
	// Completed counts tasks that returned normally.
	Completed uint64
	// LateStarts counts tasks whose goroutine began running after shutdown.
	// They were still invoked, with an already canceled context.
	LateStarts uint64
	// Panicked counts tasks that panicked. The panic was recovered.
	Panicked uint64
	// Running is the number of tasks currently executing.
	Running int64
}

// Option configures an Executor.
type Option func(*Executor)

// WithPanicHandler replaces the default panic handler, which logs the panic
// at error level. Panics if h is nil.
func WithPanicHandler(h PanicHandler) Option {
	if h == nil {
		panic("vtpool: executor panic handler must not be nil")
	}
	return func(e *Executor) {
		e.onPanic = h
	}
}

// WithLogger sets the logger used by the default panic handler.
// A nil logger falls back to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.log = l
		}
	}
}

// Executor runs every submitted task on its own goroutine.
// It is safe for concurrent use by multiple goroutines.
//
// Synchronization strategy:
//   - mu orders Submit against ShutdownNow. Submit holds the read lock
//     across the shutdown check and group.Go, ShutdownNow flips shutdown
//     under the write lock. Once ShutdownNow releases the lock no further
//     group.Go can happen, which is what makes the single group.Wait in
//     the termination goroutine legal.
//   - done is closed exactly once, after group.Wait returns.
type Executor struct {
	ctx    context.Context
	cancel context.CancelCauseFunc

	mu       sync.RWMutex
	shutdown bool
	group    errgroup.Group
	done     chan struct{}

	onPanic PanicHandler
	log     *slog.Logger

	submitted  atomic.Uint64
	completed  atomic.Uint64
	lateStarts atomic.Uint64
	panicked   atomic.Uint64
	running    atomic.Int64
}

// New creates an Executor that accepts tasks immediately.
func New(opts ...Option) *Executor {
	ctx, cancel := context.WithCancelCause(context.Background())
	e := &Executor{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.onPanic == nil {
		e.onPanic = e.logPanic
	}
	return e
}

// Submit starts task on a new goroutine and returns without waiting for it.
// It never blocks on capacity. Returns ErrShutdown once ShutdownNow has been
// called. Panics if task is nil.
func (e *Executor) Submit(task Task) error {
	if task == nil {
		panic("vtpool: executor Submit task must not be nil")
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.shutdown {
		return ErrShutdown
	}
	e.submitted.Add(1)
	e.group.Go(func() error {
		e.run(task)
		return nil
	})
	return nil
}

// run invokes task. An accepted task is always invoked, even when shutdown
// happened before its goroutine got scheduled; the task then sees a canceled
// context right away. A panic inside task is recovered and handed to
// onPanic so one faulty task cannot take down the host process.
func (e *Executor) run(task Task) {
	if e.ctx.Err() != nil {
		e.lateStarts.Add(1)
	}

	e.running.Add(1)
	defer e.running.Add(-1)

	defer func() {
		if r := recover(); r != nil {
			e.panicked.Add(1)
			e.onPanic(r, debug.Stack())
			return
		}
		e.completed.Add(1)
	}()

	task(e.ctx)
}

func (e *Executor) logPanic(recovered any, stack []byte) {
	e.log.Error("task panicked", "panic", fmt.Sprint(recovered), "stack", string(stack))
}

// ShutdownNow cancels every task context, rejects further submissions and
// returns without waiting. Safe to call multiple times.
func (e *Executor) ShutdownNow() {
	e.mu.Lock()
	if e.shutdown {
		e.mu.Unlock()
		return
	}
	e.shutdown = true
	e.mu.Unlock()

	e.cancel(ErrShutdown)

	go func() {
		// Task goroutines always return nil.
		_ = e.group.Wait()
		close(e.done)
	}()
}

// IsShutdown reports whether ShutdownNow has been called.
func (e *Executor) IsShutdown() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.shutdown
}

// Done returns a channel closed once the executor has been shut down and
// every task goroutine has returned.
func (e *Executor) Done() <-chan struct{} {
	return e.done
}

// AwaitTermination blocks until the executor is terminated (shut down and
// quiescent), the timeout elapses, or ctx is done. It returns true on
// termination and false on timeout. A timeout <= 0 waits without bound.
// If ctx ends first, AwaitTermination returns false and ctx.Err().
//
// AwaitTermination on an executor that is never shut down only returns via
// timeout or ctx.
func (e *Executor) AwaitTermination(ctx context.Context, timeout time.Duration) (bool, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-e.done:
		return true, nil
	case <-expired:
		return false, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// Stats returns a snapshot of the executor counters.
func (e *Executor) Stats() Stats {
	return Stats{
		Submitted:  e.submitted.Load(),
		Completed:  e.completed.Load(),
		LateStarts: e.lateStarts.Load(),
		Panicked:   e.panicked.Load(),
		Running:    e.running.Load(),
	}
}
