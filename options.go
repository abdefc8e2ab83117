package relwait

import (
	"errors"
	"time"

	"github.com/jmhodges/clock"
)

// specConfig holds mutable state during Spec construction.
type specConfig struct {
	maxAttempts int
	delay       time.Duration
	deadline    time.Duration
	classifier  Classifier
	backoff     Backoff
	clk         clock.Clock
}

// Option is a function that configures a [Spec] during construction.
//
// Option implements the functional options pattern, allowing optional
// configuration to be passed to [NewSpec] in a type-safe, extensible way.
// Options return an error if validation fails.
//
// Built-in options: [WithMaxAttempts], [WithDelay], [WithDeadline],
// [WithClassifier], [WithBackoff], [WithClock].
type Option func(*specConfig) error

// WithMaxAttempts sets the attempt cap for the poll.
//
// The poll fails with [ErrBudgetExhausted] once this many attempts have all
// come back retryable. Defaults to 30 if not specified.
//
// Example:
//
//	// the upgrade-graph wait: check once a minute for an hour
//	spec, err := relwait.NewSpec(
//	    relwait.WithMaxAttempts(60),
//	    relwait.WithDelay(time.Minute),
//	)
//
// Returns an error if n is zero or negative.
func WithMaxAttempts(n int) Option {
	return func(cfg *specConfig) error {
		if n <= 0 {
			return errors.New("max attempts must be positive")
		}
		cfg.maxAttempts = n
		return nil
	}
}

// WithDelay sets the base delay between attempts.
//
// The delay is applied after each retryable attempt that leaves budget
// remaining; there is no delay before the first attempt or after the last.
// Defaults to 10 seconds if not specified. A zero delay is allowed and
// means attempts run back to back.
//
// Returns an error if the duration is negative.
func WithDelay(d time.Duration) Option {
	return func(cfg *specConfig) error {
		if d < 0 {
			return errors.New("delay must not be negative")
		}
		cfg.delay = d
		return nil
	}
}

// WithDeadline sets an overall elapsed-time budget for the poll, measured
// from the start of the first attempt.
//
// When the deadline has passed after a retryable attempt, the poll fails
// with [ErrBudgetExhausted] even if attempts remain. An attempt already in
// flight is not interrupted, so the reported elapsed time may exceed the
// deadline by at most one delay interval plus the attempt's own duration.
//
// By default no deadline is set and the poll is bounded by attempts alone.
//
// Returns an error if the duration is zero or negative.
func WithDeadline(d time.Duration) Option {
	return func(cfg *specConfig) error {
		if d <= 0 {
			return errors.New("deadline must be positive")
		}
		cfg.deadline = d
		return nil
	}
}

// WithClassifier sets a custom [Classifier] for the poll.
//
// The classifier maps each check outcome to the status the poller acts on,
// overriding the check's own tag. Use this for call sites that want
// stricter behavior than [DefaultClassifier], e.g. failing fast on
// transport errors instead of retrying them:
//
//	spec, err := relwait.NewSpec(
//	    relwait.WithClassifier(func(o relwait.Outcome) relwait.Status {
//	        var pending *relwait.PendingError
//	        if o.Err != nil && !errors.As(o.Err, &pending) {
//	            return relwait.StatusFatal // transport errors don't retry
//	        }
//	        return relwait.DefaultClassifier(o)
//	    }),
//	)
//
// Returns an error if the classifier is nil.
func WithClassifier(c Classifier) Option {
	return func(cfg *specConfig) error {
		if c == nil {
			return errors.New("classifier cannot be nil")
		}
		cfg.classifier = c
		return nil
	}
}

// WithBackoff sets a delay-growth function for the poll.
//
// If not specified, [FixedDelay] is used and every inter-attempt delay
// equals the base delay. See [ExponentialBackoff] for a ready-made growth
// function.
//
// Returns an error if the backoff is nil.
func WithBackoff(b Backoff) Option {
	return func(cfg *specConfig) error {
		if b == nil {
			return errors.New("backoff cannot be nil")
		}
		cfg.backoff = b
		return nil
	}
}

// WithClock sets the clock used for elapsed-time measurement and
// inter-attempt delays.
//
// This exists so tests can drive long-cadence waits with a fake clock
// (clock.NewFake). Production call sites should not need it; the default
// is the system clock.
//
// Returns an error if the clock is nil.
func WithClock(clk clock.Clock) Option {
	return func(cfg *specConfig) error {
		if clk == nil {
			return errors.New("clock cannot be nil")
		}
		cfg.clk = clk
		return nil
	}
}
