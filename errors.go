package relwait

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two budget-driven terminal states of a poll.
// Match them with [errors.Is] on [Result.Err].
var (
	// ErrBudgetExhausted is reported when every attempt in the budget was
	// retryable and either the attempt cap or the deadline was reached.
	ErrBudgetExhausted = errors.New("poll budget exhausted")

	// ErrCancelled is reported when the poll's context was cancelled
	// before the condition was met.
	ErrCancelled = errors.New("poll cancelled")
)

// FatalError is the terminal error for a poll ended by a fatal outcome.
//
// It wraps the check's error detail, so callers can reach the underlying
// cause with [errors.As] or [errors.Unwrap].
type FatalError struct {
	// Err is the detail the check (or classifier) declared unrecoverable.
	Err error
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal: %v", e.Err)
}

// Unwrap returns the wrapped check error.
func (e *FatalError) Unwrap() error {
	return e.Err
}
