// Package runner executes a batch of named waits concurrently.
//
// This package is internal to relwait and backs the standalone binary. Each
// wait is one poll invocation; the runner fans them out over a worker pool
// with a configurable concurrency cap and emits results on a channel as
// waits finish. Waits are fully independent: a wait sleeping between
// attempts never delays another wait's attempts.
//
// The runner recovers panics from misbehaving checks so one bad check
// cannot take down the whole batch.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"

	"github.com/openshift-eng/relwait"
)

// Wait is one named poll to execute.
type Wait struct {
	// Name identifies the wait in results and logs.
	Name string

	// Labels carry key-value metadata through to the result, for callers
	// that group or filter outcomes.
	Labels map[string]string

	// Spec is the budget and policy for the poll.
	Spec relwait.Spec

	// Check evaluates the awaited condition.
	Check relwait.Check
}

// WaitResult pairs a wait's identity with its poll result.
type WaitResult struct {
	Name   string
	Labels map[string]string
	Result relwait.Result
}

// Runner executes a batch of waits concurrently.
//
// A Runner is one-shot: Start launches every wait exactly once, the results
// channel closes when all waits have finished, and the Runner is then
// spent. All lifecycle methods (Start, Stop) are safe for concurrent use.
type Runner struct {
	waits          []Wait
	maxConcurrency int
	results        chan WaitResult
	logger         *slog.Logger

	mu        sync.Mutex
	started   bool
	stopped   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a [Runner] for the given waits.
//
// maxConcurrency caps how many waits poll simultaneously; values below 1
// are raised to 1. Results are available via [Runner.Results] after
// [Runner.Start].
func New(waits []Wait, maxConcurrency int, logger *slog.Logger) *Runner {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		waits:          waits,
		maxConcurrency: maxConcurrency,
		results:        make(chan WaitResult, len(waits)),
		logger:         logger,
	}
}

// Results returns a receive-only channel that emits one [WaitResult] per
// wait. The channel is closed once every wait has finished; consumers
// should read until it is closed.
func (r *Runner) Results() <-chan WaitResult {
	return r.results
}

// Start launches the waits in background goroutines and returns
// immediately.
//
// Start is idempotent; calls after the first are no-ops, as is Start after
// Stop. If ctx is nil, context.Background() is used.
func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	if r.started || r.stopped {
		r.mu.Unlock()
		return
	}
	r.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer r.closeOnce.Do(func() { close(r.results) })

		jobs := make(chan Wait)

		var workers sync.WaitGroup
		for i := 0; i < r.maxConcurrency; i++ {
			workers.Add(1)
			go func() {
				defer workers.Done()
				for w := range jobs {
					r.results <- r.runWait(runCtx, w)
				}
			}()
		}

		for _, w := range r.waits {
			jobs <- w
		}
		close(jobs)
		workers.Wait()
	}()
}

// Stop cancels any in-flight waits and blocks until all goroutines have
// finished and the results channel is closed.
//
// Cancelled waits report [relwait.ErrCancelled]. Stop is idempotent and
// safe to call before Start.
func (r *Runner) Stop() {
	r.mu.Lock()
	if !r.stopped {
		r.stopped = true
		if r.cancel != nil {
			r.cancel()
		}
	}
	r.mu.Unlock()

	r.wg.Wait()

	// ensure the channel is closed even if Start was never called
	r.closeOnce.Do(func() { close(r.results) })
}

// runWait executes one wait with panic recovery.
func (r *Runner) runWait(ctx context.Context, w Wait) WaitResult {
	result := r.safePoll(ctx, w)
	return WaitResult{Name: w.Name, Labels: w.Labels, Result: result}
}

// safePoll invokes the poll inside a recovery boundary. A panicking check
// yields a fatal result carrying a correlation ID; the full stack trace is
// logged under the same ID.
func (r *Runner) safePoll(ctx context.Context, w Wait) (result relwait.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			correlationID := uuid.NewString()
			r.logger.Error("check panic",
				"wait", w.Name,
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", rec),
				"stack", string(debug.Stack()),
			)
			result = relwait.Result{
				Err: &relwait.FatalError{
					Err: fmt.Errorf("check panic (correlation_id: %s)", correlationID),
				},
			}
		}
	}()
	return relwait.Poll(ctx, w.Spec, w.Check)
}
