package relwait

import "time"

// Backoff computes the delay before the next attempt.
//
// It receives the number of attempts already made (1 after the first check)
// and the Spec's base delay, and returns the duration to sleep before the
// next attempt. The observed call sites all use a fixed delay; Backoff is
// the extension point for the ones that eventually want growth.
type Backoff func(attempts int, base time.Duration) time.Duration

// FixedDelay is the default [Backoff]: every inter-attempt delay equals the
// Spec's base delay.
var FixedDelay Backoff = func(attempts int, base time.Duration) time.Duration {
	return base
}

// ExponentialBackoff returns a [Backoff] that doubles the base delay after
// each attempt, capped at max.
//
// Example:
//
//	spec, _ := relwait.NewSpec(
//	    relwait.WithDelay(10*time.Second),
//	    relwait.WithBackoff(relwait.ExponentialBackoff(2*time.Minute)),
//	)
func ExponentialBackoff(max time.Duration) Backoff {
	return func(attempts int, base time.Duration) time.Duration {
		d := base
		for i := 1; i < attempts; i++ {
			d *= 2
			if d >= max {
				return max
			}
		}
		if d > max {
			return max
		}
		return d
	}
}
