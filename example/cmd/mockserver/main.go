// Standalone mock release controller for testing the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/relwait run -c example/waits.yaml
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

func main() {
	fmt.Println("Mock release controller starting on :9999")
	fmt.Println("4.14.9 enters the graph after 30s; 4.13.2 is accepted after 60s")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	start := time.Now()

	http.HandleFunc("/graph", func(w http.ResponseWriter, r *http.Request) {
		nodes := []map[string]any{
			{"version": "4.14.7", "payload": "quay.io/openshift-release-dev/ocp-release@sha256:aaa"},
			{"version": "4.14.8", "payload": "quay.io/openshift-release-dev/ocp-release@sha256:bbb"},
		}
		if time.Since(start) > 30*time.Second {
			nodes = append(nodes, map[string]any{
				"version": "4.14.9",
				"payload": "quay.io/openshift-release-dev/ocp-release@sha256:ccc",
			})
		}
		slog.Info("graph request", "channel", r.URL.Query().Get("channel"),
			"arch", r.URL.Query().Get("arch"), "nodes", len(nodes))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"nodes": nodes})
	})

	http.HandleFunc("/latest", func(w http.ResponseWriter, r *http.Request) {
		phase := "Ready"
		if time.Since(start) > 60*time.Second {
			phase = "Accepted"
		}
		slog.Info("latest request", "phase", phase)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"name":     "4.13.2",
			"phase":    phase,
			"pullSpec": "quay.io/openshift-release-dev/ocp-release:4.13.2-x86_64",
		})
	})

	if err := http.ListenAndServe(":9999", nil); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
