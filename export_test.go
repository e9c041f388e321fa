package vtpool

import "time"

// ConfigSnapshot holds a copy of poolConfig fields for test assertions in
// package vtpool_test.
type ConfigSnapshot struct {
	Name               string
	JoinTimeout        time.Duration
	HasExecutorFactory bool
	HasPanicHandler    bool
	Listeners          int
}

// ApplyOptionsForTesting creates a default poolConfig, applies opts, and
// returns a snapshot of the result without constructing a pool.
func ApplyOptionsForTesting(opts ...Option) ConfigSnapshot {
	cfg := defaultPoolConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return ConfigSnapshot{
		Name:               cfg.Name,
		JoinTimeout:        cfg.JoinTimeout,
		HasExecutorFactory: cfg.NewExecutor != nil,
		HasPanicHandler:    cfg.PanicHandler != nil,
		Listeners:          len(cfg.Listeners),
	}
}
