package checks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openshift-eng/relwait"
)

// latestRelease is the subset of the release controller's "latest" document
// we read.
type latestRelease struct {
	Name        string `json:"name"`
	Phase       string `json:"phase"`
	PullSpec    string `json:"pullSpec"`
	DownloadURL string `json:"downloadURL"`
}

// StableRelease returns a check that succeeds once the latest accepted
// release reported by a release controller endpoint equals the target
// release name.
//
// Each attempt issues a single GET against endpoint (typically
// .../api/v1/releasestream/<stream>/latest) and compares the "name" field.
// A transport failure, non-2xx status, unparseable body, or a different
// name all retry; this wait is never fatal and relies purely on the poll's
// attempt cap, matching the upstream job that polls every five minutes for
// three hours.
//
// On success the payload is the release's pull spec, or the release name
// when the controller reports no pull spec.
func StableRelease(endpoint, release string, opts ...Option) (relwait.Check, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("release controller endpoint cannot be empty")
	}
	if release == "" {
		return nil, fmt.Errorf("target release name cannot be empty")
	}

	cfg, err := newCheckConfig(opts)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{"Accept": "application/json"}
	for k, v := range cfg.headers {
		headers[k] = v
	}

	return func(ctx context.Context) relwait.Outcome {
		resp, err := graphClient.Get(ctx, endpoint, headers, cfg.timeout)
		if err != nil {
			return relwait.Retry(fmt.Errorf("release controller fetch: %w", err))
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return relwait.Retry(fmt.Errorf("release controller fetch: unexpected status %d", resp.StatusCode))
		}

		var latest latestRelease
		if err := json.Unmarshal(resp.Body, &latest); err != nil {
			return relwait.Retry(fmt.Errorf("release controller parse: %w", err))
		}

		if latest.Name != release {
			return relwait.NotYet(fmt.Sprintf("latest accepted release is %q, want %q", latest.Name, release))
		}

		payload := latest.PullSpec
		if payload == "" {
			payload = latest.Name
		}
		return relwait.Success(payload)
	}, nil
}
