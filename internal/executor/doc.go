// Package executor runs lightweight tasks on goroutines.
//
// An Executor has no workers, queue or size limit: every accepted task gets
// its own goroutine, and the Go scheduler multiplexes those goroutines onto
// OS threads. The executor offers the three capabilities a pool front-end
// needs: Submit, ShutdownNow and AwaitTermination.
//
// ShutdownNow is abrupt. It cancels the context handed to every task and
// refuses further submissions. Nothing is drained: running tasks keep going
// only until they observe ctx.Done(), and a task whose goroutine had not
// been scheduled yet starts with a context that is already canceled.
// AwaitTermination blocks until every goroutine has returned.
package executor
