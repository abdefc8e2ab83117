// Package relwait provides a reusable condition-wait poller for release
// engineering workflows that must wait for an external system to reach a
// desired state.
//
// Release pipelines spend much of their time waiting: for a version to show
// up in an upgrade graph, for a release to be accepted as stable, for an
// external tool to report success. Those waits are usually written as ad-hoc
// sleep loops scattered across scripts, each with its own counter and delay.
// relwait factors that loop out once: a check function reports a pure
// decision about the world, and the poller owns all retry, delay, deadline,
// and cancellation behavior.
//
// # Quick Start
//
// Build a Spec with functional options and poll a check until it succeeds
// or the budget runs out:
//
//	spec, _ := relwait.NewSpec(
//	    relwait.WithMaxAttempts(60),
//	    relwait.WithDelay(time.Minute),
//	)
//
//	result := relwait.Poll(ctx, spec, func(ctx context.Context) relwait.Outcome {
//	    found, err := lookupVersion(ctx, "4.14.9")
//	    if err != nil {
//	        return relwait.Retry(err) // transient, try again
//	    }
//	    if !found {
//	        return relwait.NotYet("4.14.9 not in graph")
//	    }
//	    return relwait.Success("4.14.9")
//	})
//
//	if result.Err != nil {
//	    // caller decides: abort, alert, or degrade
//	}
//
// # Outcomes and Classification
//
// A check returns an [Outcome] tagged Success, Retryable, or Fatal. Success
// ends the poll with the outcome's payload. Fatal ends it immediately with
// no further attempts. Retryable consumes one attempt from the budget.
//
// A [Classifier] on the Spec can override a check's own tagging, for call
// sites that want stricter behavior (for example, treating any transport
// error as unrecoverable). The default classifier trusts the check and
// treats anything unclassified as Retryable.
//
// # Contract
//
// Checks must not sleep or retry internally; that is the poller's job.
// The poller never logs; the [Result] carries everything a caller needs to
// decide whether a failed wait is a hard stop or merely worth noting.
//
// Each Poll invocation is independent: no shared state, no global clock,
// and sleeping between attempts never blocks other polls running in the
// same process.
//
// # Architecture
//
// The module consists of:
//
//   - relwait (this package): the poller core, Spec options, and Result
//   - checks: ready-made check adapters (upgrade graph, stable release,
//     external command output)
//   - ocp: small helpers for OpenShift version strings and the
//     automation-freeze gate
//   - config + cmd/relwait: YAML-driven standalone binary running many
//     waits concurrently
package relwait
