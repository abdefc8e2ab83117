package config

import (
	"fmt"
	"sort"

	"github.com/openshift-eng/relwait"
	"github.com/openshift-eng/relwait/checks"
)

// Wait is a fully built wait: a name, a poll budget, and a check, ready to
// be executed.
type Wait struct {
	// Name identifies the wait in output and logs.
	Name string

	// Labels carry the configured metadata plus any expansion labels
	// (e.g. arch for multi-arch graph waits).
	Labels map[string]string

	// Spec is the poll budget and policy.
	Spec relwait.Spec

	// Check evaluates the awaited condition.
	Check relwait.Check
}

// Build converts parsed configuration into executable waits.
//
// release-in-graph waits with multiple arches expand into one wait per
// architecture, each labelled with its arch and named "<name> (<arch>)".
func Build(cfg *Config) ([]Wait, error) {
	var waits []Wait

	for i := range cfg.Waits {
		built, err := buildWait(&cfg.Waits[i])
		if err != nil {
			return nil, fmt.Errorf("wait %q: %w", cfg.Waits[i].Name, err)
		}
		waits = append(waits, built...)
	}

	return waits, nil
}

// buildWait converts one WaitConfig, expanding multi-arch graph waits.
func buildWait(w *WaitConfig) ([]Wait, error) {
	spec, err := buildSpec(w)
	if err != nil {
		return nil, err
	}

	switch w.Type {
	case TypeReleaseInGraph:
		return buildGraphWaits(w, spec)

	case TypeStableRelease:
		check, err := checks.StableRelease(w.Endpoint, w.Release, httpOptions(w)...)
		if err != nil {
			return nil, err
		}
		return []Wait{{Name: w.Name, Labels: copyLabels(w.Labels), Spec: spec, Check: check}}, nil

	case TypeCommand:
		check, err := checks.Command(w.Command, w.SuccessPattern, commandOptions(w)...)
		if err != nil {
			return nil, err
		}
		return []Wait{{Name: w.Name, Labels: copyLabels(w.Labels), Spec: spec, Check: check}}, nil

	default:
		// validate() rejects unknown types before Build runs
		return nil, fmt.Errorf("unknown wait type %q", w.Type)
	}
}

// buildGraphWaits expands a release-in-graph wait across its arches.
func buildGraphWaits(w *WaitConfig, spec relwait.Spec) ([]Wait, error) {
	arches := w.Arches
	if len(arches) == 0 {
		arches = []string{"amd64"}
	}

	var waits []Wait
	for _, arch := range arches {
		check, err := checks.ReleaseInGraph(w.Endpoint, w.Channel, arch, w.Version, httpOptions(w)...)
		if err != nil {
			return nil, err
		}

		name := w.Name
		labels := copyLabels(w.Labels)
		if len(arches) > 1 {
			name = fmt.Sprintf("%s (%s)", w.Name, arch)
			if labels == nil {
				labels = make(map[string]string, 1)
			}
			labels["arch"] = arch
		}

		waits = append(waits, Wait{Name: name, Labels: labels, Spec: spec, Check: check})
	}
	return waits, nil
}

// buildSpec assembles the poll budget for a wait. Zero config values fall
// through to the SDK defaults.
func buildSpec(w *WaitConfig) (relwait.Spec, error) {
	var opts []relwait.Option

	if w.MaxAttempts > 0 {
		opts = append(opts, relwait.WithMaxAttempts(w.MaxAttempts))
	}
	if w.Delay > 0 {
		opts = append(opts, relwait.WithDelay(w.Delay.Duration()))
	}
	if w.Deadline > 0 {
		opts = append(opts, relwait.WithDeadline(w.Deadline.Duration()))
	}

	return relwait.NewSpec(opts...)
}

// httpOptions assembles adapter options for the HTTP wait types.
func httpOptions(w *WaitConfig) []checks.Option {
	var opts []checks.Option
	if w.Timeout > 0 {
		opts = append(opts, checks.WithTimeout(w.Timeout.Duration()))
	}
	if len(w.Headers) > 0 {
		opts = append(opts, checks.WithHeaders(mapToKeyValuePairs(w.Headers)...))
	}
	return opts
}

// commandOptions assembles adapter options for command waits.
func commandOptions(w *WaitConfig) []checks.Option {
	var opts []checks.Option
	if w.Timeout > 0 {
		opts = append(opts, checks.WithTimeout(w.Timeout.Duration()))
	}
	if w.WorkDir != "" {
		opts = append(opts, checks.WithWorkDir(w.WorkDir))
	}
	if len(w.Env) > 0 {
		opts = append(opts, checks.WithEnv(mapToKeyValuePairs(w.Env)...))
	}
	return opts
}

// mapToKeyValuePairs converts a map to a sorted slice of key-value pairs.
func mapToKeyValuePairs(m map[string]string) []string {
	// sort keys for deterministic ordering
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(m)*2)
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return pairs
}

// copyLabels returns a shallow copy of the map, or nil if it is empty.
func copyLabels(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
