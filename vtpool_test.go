package vtpool_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/giantswarm/vtpool"
)

const testTimeout = 10 * time.Second

// recordingExecutor is a fake Executor that runs tasks inline and records
// lifecycle calls. It lets the tests observe delegation without goroutines.
type recordingExecutor struct {
	mu        sync.Mutex
	shutdown  bool
	submitted int
	stops     int
}

func (r *recordingExecutor) Submit(task vtpool.Task) error {
	r.mu.Lock()
	if r.shutdown {
		r.mu.Unlock()
		return errors.New("fake executor shut down")
	}
	r.submitted++
	r.mu.Unlock()
	task(context.Background())
	return nil
}

func (r *recordingExecutor) ShutdownNow() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shutdown = true
	r.stops++
}

func (r *recordingExecutor) AwaitTermination(context.Context, time.Duration) (bool, error) {
	return true, nil
}

func (r *recordingExecutor) Stats() vtpool.ExecutorStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return vtpool.ExecutorStats{Submitted: uint64(r.submitted), Completed: uint64(r.submitted)}
}

func TestPoolDelegatesToExecutor(t *testing.T) {
	t.Parallel()

	fake := &recordingExecutor{}
	pool := vtpool.New(vtpool.WithExecutorFactory(func() (vtpool.Executor, error) { return fake, nil }))
	if err := pool.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var ran atomic.Int32
	for range 5 {
		if err := pool.Execute(func(context.Context) { ran.Add(1) }); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}
	if err := pool.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := pool.Join(context.Background()); err != nil {
		t.Fatalf("Join: %v", err)
	}

	if got := ran.Load(); got != 5 {
		t.Errorf("ran = %d, want 5", got)
	}
	fake.mu.Lock()
	defer fake.mu.Unlock()
	if fake.submitted != 5 || fake.stops != 1 {
		t.Errorf("fake executor submitted=%d stops=%d, want 5 and 1", fake.submitted, fake.stops)
	}
	if got := pool.Stats().Submitted; got != 5 {
		t.Errorf("Stats().Submitted = %d, want 5", got)
	}
}

func TestExecuteBeforeStartFailsWithUsageError(t *testing.T) {
	t.Parallel()

	pool := vtpool.New()

	err := pool.Execute(func(context.Context) { t.Error("task ran on a pool that was never started") })
	if !errors.Is(err, vtpool.ErrNotStarted) {
		t.Fatalf("Execute error = %v, want ErrNotStarted", err)
	}
	if got := pool.State(); got != vtpool.NotStarted {
		t.Errorf("State() = %v, want NotStarted", got)
	}
}

func TestStartFailurePropagates(t *testing.T) {
	t.Parallel()

	errNoMemory := errors.New("cannot allocate")
	pool := vtpool.New(vtpool.WithExecutorFactory(func() (vtpool.Executor, error) {
		return nil, errNoMemory
	}))

	err := pool.Start()
	if !errors.Is(err, vtpool.ErrExecutorCreate) || !errors.Is(err, errNoMemory) {
		t.Fatalf("Start error = %v, want ErrExecutorCreate wrapping the factory error", err)
	}
	if err := pool.Execute(vtpool.Runnable(func() {})); !errors.Is(err, vtpool.ErrNotStarted) {
		t.Errorf("Execute after failed Start = %v, want ErrNotStarted", err)
	}
}

func TestCapacityQueries(t *testing.T) {
	t.Parallel()

	pool := vtpool.New()
	if err := pool.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer func() { _ = pool.Stop() }()

	var tp vtpool.ThreadPool = pool
	if tp.ThreadCount() != vtpool.UnboundedThreads || tp.IdleThreadCount() != vtpool.UnboundedThreads {
		t.Errorf("thread counts = %d/%d, want %d", tp.ThreadCount(), tp.IdleThreadCount(), vtpool.UnboundedThreads)
	}
	if tp.IsLowOnResources() {
		t.Error("IsLowOnResources() = true")
	}
	if c := pool.Capacity(); c != vtpool.Unbounded() {
		t.Errorf("Capacity() = %v, want unbounded", c)
	}
}

func TestStopThenJoinReturnsPromptly(t *testing.T) {
	t.Parallel()

	pool := vtpool.New(vtpool.WithName("prompt"))
	if err := pool.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	for range 100 {
		if err := pool.Execute(func(ctx context.Context) {
			select {
			case <-ctx.Done():
			case <-time.After(time.Hour):
			}
		}); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}

	begin := time.Now()
	if err := pool.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()
	if err := pool.Join(ctx); err != nil {
		t.Fatalf("Join: %v", err)
	}
	if elapsed := time.Since(begin); elapsed > 5*time.Second {
		t.Errorf("Stop+Join took %s", elapsed)
	}

	if err := pool.Execute(vtpool.Runnable(func() {})); !errors.Is(err, vtpool.ErrStopped) {
		t.Errorf("Execute after Stop = %v, want ErrStopped", err)
	}
	if err := pool.Start(); !errors.Is(err, vtpool.ErrStopped) {
		t.Errorf("Start after Stop = %v, want ErrStopped", err)
	}
}

func TestJoinTimeoutOption(t *testing.T) {
	t.Parallel()

	pool := vtpool.New(vtpool.WithJoinTimeout(20 * time.Millisecond))
	if err := pool.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	release := make(chan struct{})
	defer close(release)
	if err := pool.Execute(vtpool.Runnable(func() { <-release })); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	_ = pool.Stop()

	if err := pool.Join(context.Background()); !errors.Is(err, vtpool.ErrJoinTimeout) {
		t.Fatalf("Join error = %v, want ErrJoinTimeout", err)
	}
}
