package relwait

import (
	"context"
	"fmt"
)

// Status classifies the result of a single check attempt.
//
// Status is a string type that can hold one of three predefined values:
// [StatusSuccess], [StatusRetryable], or [StatusFatal]. Using a string type
// allows for easy serialization and human-readable logging while maintaining
// type safety through the defined constants.
//
// The zero value ("") means unclassified; the poller's [Classifier] decides
// what to do with it ([DefaultClassifier] treats it as retryable).
type Status string

const (
	// StatusSuccess indicates the awaited condition holds. Polling stops
	// and the outcome's payload is returned to the caller.
	StatusSuccess Status = "success"

	// StatusRetryable indicates the condition does not hold yet, or the
	// check failed in a way that is worth trying again. Consumes one
	// attempt from the budget.
	StatusRetryable Status = "retryable"

	// StatusFatal indicates the condition can never hold (for example,
	// malformed input). Polling stops immediately with no retry.
	StatusFatal Status = "fatal"
)

// String returns the string representation of the status.
// This implements the fmt.Stringer interface.
func (s Status) String() string {
	return string(s)
}

// Outcome is the result of one check attempt.
//
// An Outcome carries a status tag, an opaque payload (the value observed,
// e.g. a parsed version string or JSON document), and an error detail.
// Construct outcomes with [Success], [NotYet], [Retry], or [Abort] rather
// than building the struct by hand; the constructors keep the tag and the
// detail consistent.
type Outcome struct {
	// Status is the check's own classification of this attempt.
	Status Status

	// Payload is the value observed by the check. Only meaningful on
	// success, but checks may attach partial observations to retryable
	// outcomes for diagnostics.
	Payload any

	// Err describes what went wrong on a retryable or fatal attempt.
	// nil on success.
	Err error
}

// Check is a function that evaluates the awaited condition once.
//
// Checks are side-effecting: they may issue HTTP requests, run external
// commands, or read files. The contract is that a check hands the poller a
// pure decision (an [Outcome]) and never sleeps or retries internally —
// retry, delay, and deadline behavior belong entirely to [Poll].
//
// The context passed to the check is the poll's context; checks performing
// network or process calls should honor its cancellation.
type Check func(ctx context.Context) Outcome

// Success returns an Outcome reporting that the condition holds.
// The payload is handed back to the caller via [Result.Payload].
func Success(payload any) Outcome {
	return Outcome{Status: StatusSuccess, Payload: payload}
}

// NotYet returns a retryable Outcome reporting that the external system was
// reached but the condition is not yet true (for example, a version missing
// from a release graph).
//
// NotYet and [Retry] classify identically by default, but the wrapped
// [*PendingError] lets callers of a timed-out poll tell "the condition never
// became true" apart from "the system was never reachable".
func NotYet(detail string) Outcome {
	return Outcome{Status: StatusRetryable, Err: &PendingError{Detail: detail}}
}

// Retry returns a retryable Outcome reporting a transient failure, such as
// a connection error or a non-zero process exit.
func Retry(err error) Outcome {
	return Outcome{Status: StatusRetryable, Err: err}
}

// Abort returns a fatal Outcome. Polling stops immediately; the error is
// surfaced to the caller wrapped in a [*FatalError].
func Abort(err error) Outcome {
	return Outcome{Status: StatusFatal, Err: err}
}

// Classifier maps a check's Outcome to the Status the poller acts on.
//
// Most call sites use [DefaultClassifier] and let the check tag its own
// outcomes. A custom classifier is the hook for stricter policies, such as
// refusing to retry transport errors.
type Classifier func(Outcome) Status

// DefaultClassifier is the [Classifier] used when none is configured on a
// [Spec].
//
// It trusts the outcome's own tag and classifies anything else — including
// untagged outcomes — as [StatusRetryable]. This matches the common call
// sites, where a failed lookup and a present-but-wrong value both simply
// retry.
var DefaultClassifier Classifier = func(o Outcome) Status {
	switch o.Status {
	case StatusSuccess, StatusRetryable, StatusFatal:
		return o.Status
	default:
		return StatusRetryable
	}
}

// PendingError is the error detail attached by [NotYet]: the check reached
// the external system but the awaited condition does not hold yet.
type PendingError struct {
	// Detail describes what was observed instead of the awaited state.
	Detail string
}

// Error implements the error interface.
func (e *PendingError) Error() string {
	return fmt.Sprintf("condition not yet met: %s", e.Detail)
}
