// Package checks provides ready-made check adapters for the waits that
// release pipelines perform most often.
//
// Each adapter constructs a [github.com/openshift-eng/relwait.Check]: a
// function that evaluates the awaited condition exactly once and reports a
// pure decision. All retry, delay, and deadline behavior stays in the
// poller; an adapter never sleeps and never loops.
//
// The adapters are:
//
//   - [ReleaseInGraph]: waits for a version to appear in an upgrade-graph
//     (Cincinnati) channel
//   - [StableRelease]: waits for a release controller's latest accepted
//     release to equal a target name
//   - [Command]: waits for an external command's output to match a pattern
//
// Tool-specific parsing (JSON field extraction, regex over CLI text) is
// deliberately confined here so the poller core never sees an output
// format.
package checks
