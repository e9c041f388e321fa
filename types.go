package vtpool

import (
	"context"

	"github.com/giantswarm/vtpool/internal/core"
	"github.com/giantswarm/vtpool/internal/executor"
)

// Task is a unit of work. ctx is canceled when the pool is stopped;
// long-running tasks should return promptly once ctx.Done() is closed.
// context.Cause(ctx) reports why.
type Task = executor.Task

// Runnable adapts fn, which cannot observe cancellation, to a Task.
func Runnable(fn func()) Task {
	if fn == nil {
		return nil
	}
	return func(context.Context) { fn() }
}

// PanicHandler receives a value recovered from a panicking task together
// with the goroutine stack.
type PanicHandler = executor.PanicHandler

// Executor is the capability a pool delegates tasks to. See
// WithExecutorFactory.
type Executor = core.TaskExecutor

// ExecutorStats is the counter snapshot an Executor reports.
type ExecutorStats = executor.Stats

// ExecutorFactory creates the Executor a pool owns between Start and Stop.
type ExecutorFactory = core.ExecutorFactory

// State is the lifecycle state of a pool.
type State = core.State

// Lifecycle states.
const (
	NotStarted = core.NotStarted
	Started    = core.Started
	Stopped    = core.Stopped
)

// LifecycleEvent identifies a Start or Stop notification.
type LifecycleEvent = core.LifecycleEvent

// Lifecycle events, in the order they are delivered.
const (
	EventStarting = core.EventStarting
	EventStarted  = core.EventStarted
	EventFailure  = core.EventFailure
	EventStopping = core.EventStopping
	EventStopped  = core.EventStopped
)

// LifecycleListener observes Start and Stop. err is non-nil only for
// EventFailure.
type LifecycleListener = core.LifecycleListener

// Stats is a snapshot of pool task counters.
type Stats = core.Stats

// Capacity describes how many tasks a pool can run at once. Pools returned
// by New always report Unbounded().
type Capacity = core.Capacity

// UnboundedThreads is what ThreadCount and IdleThreadCount report. It keeps
// hosts that only understand integer thread counts working; it is not a
// measured limit.
const UnboundedThreads = core.UnboundedThreads

// Unbounded returns a Capacity with no limit.
func Unbounded() Capacity { return core.Unbounded() }

// Bounded returns a Capacity limited to n. Panics if n is negative.
func Bounded(n int) Capacity { return core.Bounded(n) }
