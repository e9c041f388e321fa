package vtpool

import (
	"fmt"
	"time"
)

// Option configures a pool during construction via New.
//
// With* functions panic on invalid input. Option values are normally
// constants or wiring done once at startup, so a bad value is a programmer
// error and fails fast, like regexp.MustCompile.
type Option func(*poolConfig)

// WithName sets the pool name used in logs and error messages.
// Panics if name is empty.
func WithName(name string) Option {
	if name == "" {
		panic("vtpool: pool name must not be empty")
	}
	return func(c *poolConfig) {
		c.Name = name
	}
}

// WithJoinTimeout bounds how long Join waits for the pool to quiesce. When
// the bound elapses Join returns ErrJoinTimeout.
//
// Default: no bound (DefaultJoinTimeout).
//
// Panics if d <= 0.
func WithJoinTimeout(d time.Duration) Option {
	if d <= 0 {
		panic(fmt.Sprintf("vtpool: join timeout must be greater than 0, got %s", d))
	}
	return func(c *poolConfig) {
		c.JoinTimeout = d
	}
}

// WithExecutorFactory replaces the goroutine-per-task executor created by
// Start. A factory error makes Start fail with ErrExecutorCreate.
// Panics if f is nil.
func WithExecutorFactory(f ExecutorFactory) Option {
	if f == nil {
		panic("vtpool: executor factory must not be nil")
	}
	return func(c *poolConfig) {
		c.NewExecutor = f
	}
}

// WithPanicHandler receives panics recovered from tasks, with the stack of
// the panicking goroutine. Without it, panics are logged at error level.
// Ignored when WithExecutorFactory supplies the executor.
// Panics if h is nil.
func WithPanicHandler(h PanicHandler) Option {
	if h == nil {
		panic("vtpool: panic handler must not be nil")
	}
	return func(c *poolConfig) {
		c.PanicHandler = h
	}
}

// WithLifecycleListener registers l for Start and Stop notifications.
// Listeners run synchronously, in registration order, and must not call
// Start or Stop on the same pool. May be given more than once.
// Panics if l is nil.
func WithLifecycleListener(l LifecycleListener) Option {
	if l == nil {
		panic("vtpool: lifecycle listener must not be nil")
	}
	return func(c *poolConfig) {
		c.Listeners = append(c.Listeners, l)
	}
}
