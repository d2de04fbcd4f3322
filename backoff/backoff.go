// Package backoff holds the delay functions used between failed syncs of a
// project.
package backoff

import (
	"math"
	"time"
)

// Func returns the delay after the given number of consecutive failures.
type Func func(retries int64) time.Duration

func Fixed(d time.Duration) Func {
	return func(int64) time.Duration {
		return d
	}
}

func Linear(increment time.Duration) Func {
	return func(retries int64) time.Duration {
		return increment * time.Duration(retries)
	}
}

// Exponential doubles base for every retry. A delay that does not fit a
// Duration saturates at the largest one.
func Exponential(base time.Duration) Func {
	return func(retries int64) time.Duration {
		n := min(max(retries, 0), 62)
		if base > math.MaxInt64>>n {
			return math.MaxInt64
		}
		return base << n
	}
}

// Capped limits the delay of fn to ceiling. A product that overflowed is
// capped as well.
func Capped(ceiling time.Duration, fn Func) Func {
	return func(retries int64) time.Duration {
		d := fn(retries)
		if d < 0 || d > ceiling {
			return ceiling
		}
		return d
	}
}
