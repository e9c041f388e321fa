package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/giantswarm/vtpool/internal/executor"
)

// TaskExecutor is the capability a Pool delegates to. *executor.Executor is
// the production implementation; tests substitute fakes through
// PoolConfig.NewExecutor.
type TaskExecutor interface {
	// Submit hands task to the executor without blocking. It returns an
	// error wrapping executor.ErrShutdown once ShutdownNow has run.
	Submit(task executor.Task) error

	// ShutdownNow cancels all tasks and rejects new ones without waiting.
	ShutdownNow()

	// AwaitTermination waits for quiescence after ShutdownNow. A timeout
	// <= 0 means no bound. Returns false on timeout and ctx.Err() when
	// ctx ends first.
	AwaitTermination(ctx context.Context, timeout time.Duration) (bool, error)

	// Stats returns task counters.
	Stats() executor.Stats
}

// ExecutorFactory creates the executor a Pool owns between Start and Stop.
type ExecutorFactory func() (TaskExecutor, error)

// PoolConfig holds configuration for a Pool.
//
// All fields are immutable after construction via NewPool.
type PoolConfig struct {
	// Name identifies the pool in logs and error messages.
	Name string

	// JoinTimeout bounds how long Join waits for quiescence. Zero means
	// Join waits until the executor terminates or the caller's context
	// ends. Default: 0.
	JoinTimeout time.Duration

	// NewExecutor creates the executor on Start. Nil selects
	// DefaultExecutorFactory.
	NewExecutor ExecutorFactory

	// PanicHandler receives panics recovered from tasks run by the default
	// executor. Nil logs them at error level.
	PanicHandler executor.PanicHandler

	// Listeners are notified of lifecycle events in registration order.
	Listeners []LifecycleListener
}

// Validate checks all PoolConfig invariants and reports every violation
// found, joined with errors.Join.
func (c PoolConfig) Validate() error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, errors.New("pool name must not be empty"))
	}
	if c.JoinTimeout < 0 {
		errs = append(errs, fmt.Errorf("join timeout must not be negative, got %s", c.JoinTimeout))
	}
	for i, l := range c.Listeners {
		if l == nil {
			errs = append(errs, fmt.Errorf("lifecycle listener %d must not be nil", i))
		}
	}

	return errors.Join(errs...)
}

// executorFactory returns the configured factory or the default one.
func (c PoolConfig) executorFactory() ExecutorFactory {
	if c.NewExecutor != nil {
		return c.NewExecutor
	}
	return DefaultExecutorFactory(c.PanicHandler)
}

// DefaultExecutorFactory returns a factory producing goroutine-per-task
// executors that log through Logger. A nil onPanic keeps the executor's
// logging panic handler.
func DefaultExecutorFactory(onPanic executor.PanicHandler) ExecutorFactory {
	return func() (TaskExecutor, error) {
		opts := []executor.Option{executor.WithLogger(Logger())}
		if onPanic != nil {
			opts = append(opts, executor.WithPanicHandler(onPanic))
		}
		return executor.New(opts...), nil
	}
}
