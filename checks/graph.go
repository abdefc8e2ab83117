package checks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/blang/semver/v4"

	"github.com/openshift-eng/relwait"
	"github.com/openshift-eng/relwait/internal/httpx"
)

// graphClient is shared by all HTTP adapters; the upgrade graph and release
// controller are a small, fixed set of hosts.
var graphClient = httpx.NewClient()

// graphResponse is the subset of the upgrade-graph document we read.
type graphResponse struct {
	Nodes []graphNode `json:"nodes"`
}

// graphNode is one release in the graph.
type graphNode struct {
	Version string            `json:"version"`
	Payload string            `json:"payload"`
	Meta    map[string]string `json:"metadata"`
}

// ReleaseInGraph returns a check that succeeds once version is present in
// the given channel of an upgrade-graph (Cincinnati) endpoint.
//
// Each attempt issues a single GET against endpoint with channel and arch
// query parameters and an "Accept: application/json" header, and scans the
// returned node list. The outcomes are:
//
//   - version found: success, with the node's payload pullspec as the
//     result payload (falls back to the version string when the graph
//     carries no pullspec)
//   - version absent: condition not yet met, retry
//   - transport failure, non-2xx status, or unparseable body: retry
//
// Graph serving is eventually consistent, so nothing here is fatal; the
// poll's budget decides when to give up. The upstream job polls this once a
// minute for an hour.
//
// The target version must parse as a semantic version (e.g. "4.14.9" or
// "4.15.0-rc.3"); a malformed target is a construction error, not a
// poll-time failure.
func ReleaseInGraph(endpoint, channel, arch, version string, opts ...Option) (relwait.Check, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("graph endpoint cannot be empty")
	}
	if channel == "" {
		return nil, fmt.Errorf("channel cannot be empty")
	}
	if _, err := semver.Parse(version); err != nil {
		return nil, fmt.Errorf("invalid target version %q: %w", version, err)
	}

	cfg, err := newCheckConfig(opts)
	if err != nil {
		return nil, err
	}

	if arch == "" {
		arch = "amd64"
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid graph endpoint: %w", err)
	}
	q := u.Query()
	q.Set("channel", channel)
	q.Set("arch", arch)
	u.RawQuery = q.Encode()
	target := u.String()

	headers := map[string]string{"Accept": "application/json"}
	for k, v := range cfg.headers {
		headers[k] = v
	}

	return func(ctx context.Context) relwait.Outcome {
		resp, err := graphClient.Get(ctx, target, headers, cfg.timeout)
		if err != nil {
			return relwait.Retry(fmt.Errorf("graph fetch: %w", err))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return relwait.Retry(fmt.Errorf("graph fetch: unexpected status %d", resp.StatusCode))
		}

		var graph graphResponse
		if err := json.Unmarshal(resp.Body, &graph); err != nil {
			return relwait.Retry(fmt.Errorf("graph parse: %w", err))
		}

		for _, node := range graph.Nodes {
			if node.Version == version {
				payload := node.Payload
				if payload == "" {
					payload = node.Version
				}
				return relwait.Success(payload)
			}
		}

		return relwait.NotYet(fmt.Sprintf("%s not in channel %s (%s), %d nodes present",
			version, channel, arch, len(graph.Nodes)))
	}, nil
}

// Channel derives the conventional channel name for a release version,
// e.g. Channel("candidate", "4.14.9") == "candidate-4.14".
//
// Returns an error if the version does not parse as a semantic version.
func Channel(prefix, version string) (string, error) {
	v, err := semver.Parse(version)
	if err != nil {
		return "", fmt.Errorf("invalid version %q: %w", version, err)
	}
	if prefix == "" {
		prefix = "candidate"
	}
	return fmt.Sprintf("%s-%d.%d", strings.TrimSuffix(prefix, "-"), v.Major, v.Minor), nil
}
