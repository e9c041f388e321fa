package core

import (
	"fmt"
	"math"
)

// UnboundedThreads is reported by ThreadCount and IdleThreadCount. Hosts
// written for fixed-size pools read plain integers; for them the largest
// 32-bit int reads as "never short of threads". It is a compatibility value,
// not a measurement. Use Capacity to ask the question directly.
const UnboundedThreads = math.MaxInt32

// Capacity describes how many tasks a pool can run at once.
// The zero value is unbounded.
type Capacity struct {
	limit   int
	bounded bool
}

// Unbounded returns a Capacity with no limit.
func Unbounded() Capacity {
	return Capacity{}
}

// Bounded returns a Capacity limited to n concurrent tasks.
// Panics if n is negative.
func Bounded(n int) Capacity {
	if n < 0 {
		panic(fmt.Sprintf("vtpool: bounded capacity must not be negative, got %d", n))
	}
	return Capacity{limit: n, bounded: true}
}

// IsUnbounded reports whether c has no limit.
func (c Capacity) IsUnbounded() bool {
	return !c.bounded
}

// Limit returns the limit and true for a bounded capacity, or 0 and false
// for an unbounded one.
func (c Capacity) Limit() (int, bool) {
	return c.limit, c.bounded
}

// Threads renders c as an integer thread count: the limit when bounded,
// UnboundedThreads otherwise.
func (c Capacity) Threads() int {
	if !c.bounded {
		return UnboundedThreads
	}
	return c.limit
}

// String implements fmt.Stringer.
func (c Capacity) String() string {
	if !c.bounded {
		return "unbounded"
	}
	return fmt.Sprintf("bounded(%d)", c.limit)
}
