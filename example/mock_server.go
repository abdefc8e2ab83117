package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// StartMockReleaseServer runs a mock release controller that makes the demo
// conditions come true after a short warm-up:
//
//	/graph  - Cincinnati-style upgrade graph; 4.14.9 appears after graphDelay
//	/latest - release stream latest; 4.13.2 is Accepted after acceptDelay
//
// Call this in a goroutine before building checks.
func StartMockReleaseServer(addr string) {
	start := time.Now()
	const (
		graphDelay  = 6 * time.Second
		acceptDelay = 10 * time.Second
	)

	http.HandleFunc("/graph", func(w http.ResponseWriter, r *http.Request) {
		nodes := []map[string]any{
			{"version": "4.14.7", "payload": "quay.io/openshift-release-dev/ocp-release@sha256:aaa"},
			{"version": "4.14.8", "payload": "quay.io/openshift-release-dev/ocp-release@sha256:bbb"},
		}
		if time.Since(start) > graphDelay {
			nodes = append(nodes, map[string]any{
				"version": "4.14.9",
				"payload": "quay.io/openshift-release-dev/ocp-release@sha256:ccc",
			})
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"nodes": nodes})
	})

	http.HandleFunc("/latest", func(w http.ResponseWriter, r *http.Request) {
		phase := "Ready"
		if time.Since(start) > acceptDelay {
			phase = "Accepted"
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"name":     "4.13.2",
			"phase":    phase,
			"pullSpec": "quay.io/openshift-release-dev/ocp-release:4.13.2-x86_64",
		})
	})

	if err := http.ListenAndServe(addr, nil); err != nil {
		slog.Error("mock server error", "error", err)
	}
}
