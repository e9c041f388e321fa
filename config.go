package vtpool

import "github.com/giantswarm/vtpool/internal/core"

// poolConfig wraps core.PoolConfig so internal types stay out of option
// signatures.
type poolConfig struct {
	core.PoolConfig
}

func defaultPoolConfig() poolConfig {
	return poolConfig{core.PoolConfig{
		Name:        DefaultName,
		JoinTimeout: DefaultJoinTimeout,
	}}
}
