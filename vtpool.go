package vtpool

import (
	"context"

	"github.com/giantswarm/vtpool/internal/core"
)

// Compile-time interface satisfaction check.
var _ Pool = (*poolWrapper)(nil)

// poolWrapper implements Pool on top of core.Pool.
//
// core.Pool is a named field rather than embedded so that callers cannot
// reach methods added to core.Pool later through a type assertion.
type poolWrapper struct {
	pool *core.Pool
}

// New returns a pool in the NotStarted state. It allocates no executor;
// call Start for that.
//
// Panics if any option receives an invalid value. See the individual With*
// functions for constraints.
//
//nolint:ireturn // Returns Pool interface so hosts can substitute fakes.
func New(opts ...Option) Pool {
	cfg := defaultPoolConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &poolWrapper{pool: core.NewPool(cfg.PoolConfig)}
}

func (w *poolWrapper) Start() error { return w.pool.Start() }

func (w *poolWrapper) Stop() error { return w.pool.Stop() }

func (w *poolWrapper) Execute(task Task) error { return w.pool.Execute(task) }

func (w *poolWrapper) TryExecute(task Task) bool { return w.pool.TryExecute(task) }

func (w *poolWrapper) Join(ctx context.Context) error { return w.pool.Join(ctx) }

func (w *poolWrapper) ThreadCount() int { return w.pool.ThreadCount() }

func (w *poolWrapper) IdleThreadCount() int { return w.pool.IdleThreadCount() }

func (w *poolWrapper) IsLowOnResources() bool { return w.pool.IsLowOnResources() }

func (w *poolWrapper) Capacity() Capacity { return w.pool.Capacity() }

func (w *poolWrapper) State() State { return w.pool.State() }

func (w *poolWrapper) Stats() Stats { return w.pool.Stats() }

func (w *poolWrapper) Name() string { return w.pool.Name() }
