package relwait

import (
	"context"
	"time"

	"github.com/jmhodges/clock"
)

const (
	defaultMaxAttempts = 30
	defaultDelay       = 10 * time.Second
)

// Spec is the budget and policy for one poll invocation.
//
// Spec is immutable after creation via [NewSpec]. All fields are private
// with getter methods, ensuring a spec cannot be modified after
// construction. A Spec holds no mutable state, so it is safe to reuse the
// same value across concurrent [Poll] invocations, though the observed call
// sites construct one per wait.
//
// Specs are configured using the functional options pattern with [Option]
// functions such as [WithMaxAttempts], [WithDelay], [WithDeadline],
// [WithClassifier], [WithBackoff], and [WithClock].
type Spec struct {
	maxAttempts int
	delay       time.Duration
	deadline    time.Duration
	classifier  Classifier
	backoff     Backoff
	clk         clock.Clock

	// sleep is the suspension hook between attempts. Overridden in tests
	// to make long-cadence scenarios deterministic.
	sleep func(ctx context.Context, clk clock.Clock, d time.Duration) error
}

// MaxAttempts returns the attempt cap. Always > 0.
// Defaults to 30 if not set via [WithMaxAttempts].
func (s Spec) MaxAttempts() int {
	return s.maxAttempts
}

// Delay returns the base inter-attempt delay.
// Defaults to 10 seconds if not set via [WithDelay].
func (s Spec) Delay() time.Duration {
	return s.delay
}

// Deadline returns the overall elapsed-time budget, or 0 when the poll is
// bounded by attempts only.
func (s Spec) Deadline() time.Duration {
	return s.deadline
}

// NewSpec creates a [Spec] with the given options.
//
// Options have sensible defaults matching the most common call sites:
//   - Max attempts: 30
//   - Delay: 10 seconds
//   - No overall deadline (attempt cap only)
//   - Classification: [DefaultClassifier]
//   - Fixed delay (no backoff growth)
//
// Returns an error if any option is invalid.
//
// Example:
//
//	spec, err := relwait.NewSpec(
//	    relwait.WithMaxAttempts(36),
//	    relwait.WithDelay(5*time.Minute),
//	)
func NewSpec(opts ...Option) (Spec, error) {
	cfg := &specConfig{
		maxAttempts: defaultMaxAttempts,
		delay:       defaultDelay,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Spec{}, err
		}
	}

	classifier := cfg.classifier
	if classifier == nil {
		classifier = DefaultClassifier
	}

	backoff := cfg.backoff
	if backoff == nil {
		backoff = FixedDelay
	}

	clk := cfg.clk
	if clk == nil {
		clk = clock.New()
	}

	return Spec{
		maxAttempts: cfg.maxAttempts,
		delay:       cfg.delay,
		deadline:    cfg.deadline,
		classifier:  classifier,
		backoff:     backoff,
		clk:         clk,
		sleep:       sleepUntil,
	}, nil
}

// sleepUntil suspends for d or until the context is cancelled, whichever
// comes first. Each call uses its own timer, so concurrent polls never
// serialize against one another.
func sleepUntil(ctx context.Context, clk clock.Clock, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	select {
	case <-clk.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
