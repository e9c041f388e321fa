package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/giantswarm/vtpool/internal/executor"
	"github.com/giantswarm/vtpool/internal/sentinel"
)

// ErrNotStarted is returned by Execute and Join when Start has not been
// called yet.
const ErrNotStarted = sentinel.Error("pool not started")

// ErrStopped is returned by Execute after Stop and by Start on a pool that
// has already been stopped. Pools are single-use.
const ErrStopped = sentinel.Error("pool stopped")

// ErrNilTask is returned by Execute when the task is nil.
const ErrNilTask = sentinel.Error("task must not be nil")

// ErrExecutorCreate wraps the factory error when Start cannot create the
// executor.
const ErrExecutorCreate = sentinel.Error("cannot create executor")

// ErrJoinInterrupted is returned by Join when the caller's context ends
// before the executor terminates. The context error is wrapped as well.
const ErrJoinInterrupted = sentinel.Error("join interrupted")

// ErrJoinTimeout is returned by Join when PoolConfig.JoinTimeout elapses
// before the executor terminates.
const ErrJoinTimeout = sentinel.Error("join timed out")

// Stats is a snapshot of pool counters. It is observational only; the pool
// never uses it for admission.
type Stats struct {
	Submitted  uint64
	Rejected   uint64
	Completed  uint64
	LateStarts uint64
	Panicked   uint64
	Running    int64
}

// handle boxes the executor so it can live in an atomic.Pointer.
type handle struct {
	exec TaskExecutor
}

// Pool presents an unbounded TaskExecutor through a fixed thread pool
// contract. It owns no workers; every task goes straight to the executor.
// It is safe for concurrent use by multiple goroutines.
//
// Synchronization strategy:
//   - lifecycleMu serializes Start and Stop. Execute and Join never take it.
//   - active is the executor handle, non-nil iff state is Started. It is
//     stored only after the executor is fully built, so Execute observes
//     either a usable executor or nil.
//   - retired keeps the executor after Stop clears active, for Join.
//     It is stored before state becomes Stopped and before stoppedCh closes.
//   - stoppedCh lets Join called during Started wait for Stop.
type Pool struct {
	cfg PoolConfig

	lifecycleMu sync.Mutex
	state       atomic.Uint32 // State; zero value is NotStarted

	active  atomic.Pointer[handle]
	retired atomic.Pointer[handle]

	stoppedCh chan struct{}

	rejected atomic.Uint64
}

// NewPool creates a Pool in the NotStarted state. It performs no allocation
// of executor resources; call Start for that.
//
// Panics if cfg.Validate() reports any errors.
func NewPool(cfg PoolConfig) *Pool {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("vtpool: invalid pool config: %v", err))
	}
	cfg.Listeners = append([]LifecycleListener(nil), cfg.Listeners...)
	return &Pool{
		cfg:       cfg,
		stoppedCh: make(chan struct{}),
	}
}

func (p *Pool) loadState() State {
	return State(p.state.Load())
}

func (p *Pool) storeState(s State) {
	p.state.Store(uint32(s))
}

// Name returns the configured pool name.
func (p *Pool) Name() string {
	return p.cfg.Name
}

// State returns the current lifecycle state.
func (p *Pool) State() State {
	return p.loadState()
}

func (p *Pool) notify(ev LifecycleEvent, err error) {
	for _, l := range p.cfg.Listeners {
		l(ev, err)
	}
}

// Start creates the executor and moves the pool to Started.
//
// Calling Start on a started pool is a no-op; no second executor is created.
// Calling Start on a stopped pool returns ErrStopped. If the executor
// factory fails, the error is returned wrapping ErrExecutorCreate and the
// pool stays NotStarted with no executor published.
func (p *Pool) Start() error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	switch p.loadState() {
	case Started:
		return nil
	case Stopped:
		return fmt.Errorf("start %s: %w", p.cfg.Name, ErrStopped)
	}

	p.notify(EventStarting, nil)

	exec, err := p.cfg.executorFactory()()
	if err == nil && exec == nil {
		err = errors.New("factory returned nil executor")
	}
	if err != nil {
		err = fmt.Errorf("start %s: %w: %w", p.cfg.Name, ErrExecutorCreate, err)
		Logger().Debug("pool start failed", "pool", p.cfg.Name, "error", err)
		p.notify(EventFailure, err)
		return err
	}

	p.active.Store(&handle{exec: exec})
	p.storeState(Started)
	Logger().Debug("pool started", "pool", p.cfg.Name)
	p.notify(EventStarted, nil)
	return nil
}

// Stop shuts the executor down immediately: every task context is canceled
// and no draining happens. Stop does not wait for running tasks; use Join
// for that.
//
// Stop on a pool that was never started, or that is already stopped, is a
// no-op.
func (p *Pool) Stop() error {
	p.lifecycleMu.Lock()
	defer p.lifecycleMu.Unlock()

	if p.loadState() != Started {
		return nil
	}

	p.notify(EventStopping, nil)

	h := p.active.Load()
	p.retired.Store(h)
	p.active.Store(nil)
	p.storeState(Stopped)
	close(p.stoppedCh)

	h.exec.ShutdownNow()

	Logger().Debug("pool stopped", "pool", p.cfg.Name)
	p.notify(EventStopped, nil)
	return nil
}

// Execute hands task to the executor and returns without waiting for it to
// run. It never blocks on capacity.
//
// Returns ErrNilTask for a nil task, ErrNotStarted before Start and
// ErrStopped after Stop. A call racing Stop either succeeds, in which case
// the task runs with a canceled context, or fails with ErrStopped.
func (p *Pool) Execute(task executor.Task) error {
	if task == nil {
		return ErrNilTask
	}

	h := p.active.Load()
	if h == nil {
		p.rejected.Add(1)
		err := p.absentError()
		Logger().Debug("task rejected", "pool", p.cfg.Name, "error", err)
		return err
	}

	if err := h.exec.Submit(task); err != nil {
		p.rejected.Add(1)
		if errors.Is(err, executor.ErrShutdown) {
			return fmt.Errorf("execute on %s: %w", p.cfg.Name, ErrStopped)
		}
		return fmt.Errorf("execute on %s: %w", p.cfg.Name, err)
	}
	return nil
}

// absentError classifies a missing executor handle.
func (p *Pool) absentError() error {
	if p.loadState() == Stopped {
		return ErrStopped
	}
	return ErrNotStarted
}

// TryExecute is Execute reporting acceptance as a bool.
func (p *Pool) TryExecute(task executor.Task) bool {
	return p.Execute(task) == nil
}

// Join blocks until the pool has been stopped and every task has returned.
//
// Join called on a started pool first waits for Stop. It returns
// ErrNotStarted if the pool was never started. If ctx ends first, the
// returned error wraps both ErrJoinInterrupted and ctx.Err(). If
// PoolConfig.JoinTimeout is positive and elapses first, the error wraps
// ErrJoinTimeout.
//
// A task that ignores cancellation keeps Join blocked until it returns.
func (p *Pool) Join(ctx context.Context) error {
	if p.loadState() == NotStarted {
		return ErrNotStarted
	}

	if p.cfg.JoinTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeoutCause(ctx, p.cfg.JoinTimeout, ErrJoinTimeout)
		defer cancel()
	}

	select {
	case <-p.stoppedCh:
	case <-ctx.Done():
		return p.joinError(ctx)
	}

	h := p.retired.Load()
	if _, err := h.exec.AwaitTermination(ctx, 0); err != nil {
		return p.joinError(ctx)
	}
	return nil
}

// joinError converts the end of the join context into the error returned to
// the caller.
func (p *Pool) joinError(ctx context.Context) error {
	if errors.Is(context.Cause(ctx), ErrJoinTimeout) {
		return fmt.Errorf("join %s after %s: %w", p.cfg.Name, p.cfg.JoinTimeout, ErrJoinTimeout)
	}
	return fmt.Errorf("join %s: %w: %w", p.cfg.Name, ErrJoinInterrupted, ctx.Err())
}

// Capacity reports the pool capacity, which is always unbounded.
func (p *Pool) Capacity() Capacity {
	return Unbounded()
}

// ThreadCount returns UnboundedThreads regardless of load.
func (p *Pool) ThreadCount() int {
	return p.Capacity().Threads()
}

// IdleThreadCount returns UnboundedThreads regardless of load. Idle workers
// are not a meaningful notion when nothing is preallocated.
func (p *Pool) IdleThreadCount() int {
	return p.Capacity().Threads()
}

// IsLowOnResources always returns false. Exhaustion of memory or OS threads
// is not detected.
func (p *Pool) IsLowOnResources() bool {
	return false
}

// Stats returns a snapshot of the task counters. Counters of the executor
// survive Stop; before Start only Rejected can be non-zero.
func (p *Pool) Stats() Stats {
	s := Stats{Rejected: p.rejected.Load()}

	h := p.active.Load()
	if h == nil {
		h = p.retired.Load()
	}
	if h == nil {
		return s
	}

	es := h.exec.Stats()
	s.Submitted = es.Submitted
	s.Completed = es.Completed
	s.LateStarts = es.LateStarts
	s.Panicked = es.Panicked
	s.Running = es.Running
	return s
}
