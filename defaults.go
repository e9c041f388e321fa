package vtpool

import "time"

// Default configuration values for New.
const (
	// DefaultName is the pool name used in logs and error messages.
	DefaultName = "vtpool"

	// DefaultJoinTimeout is zero: Join waits until the executor terminates
	// or the caller's context ends, with no bound of its own.
	DefaultJoinTimeout time.Duration = 0
)
