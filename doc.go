// Package vtpool provides an unbounded, goroutine-backed thread pool for
// servers whose host framework expects a classic worker pool.
//
// The pool owns no workers, queue or scheduling policy. Every task passed to
// Execute runs on its own goroutine, and the Go scheduler multiplexes those
// goroutines onto OS threads. Capacity queries written for fixed-size pools
// therefore get fixed answers: ThreadCount and IdleThreadCount report
// UnboundedThreads and IsLowOnResources reports false.
//
// # Basic Usage
//
//	pool := vtpool.New(vtpool.WithName("http"))
//	if err := pool.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
//	err := pool.Execute(func(ctx context.Context) {
//	    // ctx is canceled when the pool is stopped.
//	    handle(ctx, conn)
//	})
//	if err != nil {
//	    // ErrNotStarted or ErrStopped: the task was not accepted.
//	}
//
//	_ = pool.Stop()
//	if err := pool.Join(ctx); err != nil {
//	    // ErrJoinInterrupted when ctx ended first.
//	}
//
// # Lifecycle
//
// A pool moves NotStarted → Started → Stopped and is single-use. Stop is
// abrupt: it cancels the context of every task instead of draining them.
// Tasks are expected to watch ctx.Done(); a task that ignores it keeps Join
// blocked until it returns on its own.
package vtpool
