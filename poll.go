package relwait

import (
	"context"
	"errors"
	"fmt"
)

// Poll repeatedly evaluates check until it succeeds, fails fatally, or the
// Spec's budget is exhausted, and returns a [Result].
//
// Each attempt invokes check exactly once and classifies its outcome:
//
//   - Success: polling stops; the outcome's payload is returned.
//   - Fatal: polling stops immediately with a [*FatalError]; remaining
//     budget is irrelevant.
//   - Retryable: if the attempt cap is reached, or the configured deadline
//     has passed, polling stops with [ErrBudgetExhausted]; otherwise the
//     poll sleeps for the configured delay and tries again.
//
// Cancelling ctx during an inter-attempt sleep ends the poll immediately
// with [ErrCancelled] rather than waiting out the remaining delay. A ctx
// that is already cancelled on entry yields [ErrCancelled] with zero
// attempts.
//
// Elapsed time is measured from the start of the first attempt. Polling is
// strictly sequential within one invocation, and invocations share no
// state, so any number of polls may run concurrently in one process.
//
// A zero-value Spec polls with the [NewSpec] defaults.
func Poll(ctx context.Context, spec Spec, check Check) Result {
	if spec.sleep == nil {
		spec, _ = NewSpec()
	}
	if check == nil {
		return Result{Err: &FatalError{Err: errors.New("nil check")}}
	}

	start := spec.clk.Now()

	if ctx.Err() != nil {
		return Result{Err: fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())}
	}

	var attempts int
	var lastErr error

	for {
		attempts++
		outcome := check(ctx)

		switch spec.classifier(outcome) {
		case StatusSuccess:
			return Result{
				Payload:  outcome.Payload,
				Attempts: attempts,
				Elapsed:  spec.clk.Now().Sub(start),
			}
		case StatusFatal:
			err := outcome.Err
			if err == nil {
				err = errors.New("check reported fatal outcome")
			}
			return Result{
				Attempts: attempts,
				Elapsed:  spec.clk.Now().Sub(start),
				Err:      &FatalError{Err: err},
			}
		}

		lastErr = outcome.Err
		elapsed := spec.clk.Now().Sub(start)

		if attempts >= spec.maxAttempts || (spec.deadline > 0 && elapsed >= spec.deadline) {
			return Result{
				Attempts: attempts,
				Elapsed:  elapsed,
				Err:      budgetError(attempts, lastErr),
			}
		}

		if err := spec.sleep(ctx, spec.clk, spec.backoff(attempts, spec.delay)); err != nil {
			return Result{
				Attempts: attempts,
				Elapsed:  spec.clk.Now().Sub(start),
				Err:      fmt.Errorf("%w: %w", ErrCancelled, err),
			}
		}
	}
}

// budgetError builds the timeout error, preserving the last retryable
// detail so callers can tell a persistently unreachable system apart from a
// condition that never became true (see [PendingError]).
func budgetError(attempts int, lastErr error) error {
	if lastErr == nil {
		return fmt.Errorf("%w: %d attempts", ErrBudgetExhausted, attempts)
	}
	return fmt.Errorf("%w: %d attempts, last outcome: %w", ErrBudgetExhausted, attempts, lastErr)
}
