package relwait

import "time"

// Result is the final outcome of one [Poll] invocation.
//
// Exactly one of two shapes is produced: success (Err nil, Payload set) or
// failure (Err set). A failure always carries how many attempts were made
// and how long the poll ran, so the invoking workflow can decide whether to
// abort, alert, or degrade gracefully. The poller itself never logs and
// never swallows a terminal state.
type Result struct {
	// Payload is the value observed by the successful check attempt.
	// nil on failure.
	Payload any

	// Attempts is the number of check invocations made, counting the one
	// that produced the terminal state. Never exceeds the configured
	// attempt cap.
	Attempts int

	// Elapsed is the time from the start of the first attempt to the
	// terminal state.
	Elapsed time.Duration

	// Err is nil on success. On failure it is one of:
	//   - [ErrBudgetExhausted] (wrapped, with the last retryable detail)
	//   - [ErrCancelled] (wrapped)
	//   - a [*FatalError] wrapping the check's detail
	Err error
}

// Succeeded reports whether the poll ended with the condition met.
func (r Result) Succeeded() bool {
	return r.Err == nil
}
