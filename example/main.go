package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/openshift-eng/relwait"
	"github.com/openshift-eng/relwait/checks"
)

func main() {
	// start mock release controller (see mock_server.go)
	go StartMockReleaseServer(":9999")
	time.Sleep(100 * time.Millisecond)

	fmt.Println()
	fmt.Println("  relwait demo")
	fmt.Println("  Waiting for two conditions against a mock release controller:")
	fmt.Println("  - 4.14.9 appears in the candidate-4.14 upgrade graph (~6s)")
	fmt.Println("  - 4.13.2 reaches the top of the 4-stable stream (~10s)")
	fmt.Println("  Press Ctrl+C to cancel")
	fmt.Println()

	graphCheck, err := checks.ReleaseInGraph(
		"http://localhost:9999/graph", "candidate-4.14", "amd64", "4.14.9")
	if err != nil {
		slog.Error("failed to build graph check", "error", err)
		os.Exit(1)
	}

	stableCheck, err := checks.StableRelease(
		"http://localhost:9999/latest", "4.13.2")
	if err != nil {
		slog.Error("failed to build stable check", "error", err)
		os.Exit(1)
	}

	// short cadence for the demo; production call sites use minutes
	spec, err := relwait.NewSpec(
		relwait.WithMaxAttempts(15),
		relwait.WithDelay(2*time.Second),
	)
	if err != nil {
		slog.Error("failed to build spec", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	waits := map[string]relwait.Check{
		"4.14.9 in graph": graphCheck,
		"4.13.2 accepted": stableCheck,
	}

	var wg sync.WaitGroup
	for name, check := range waits {
		wg.Add(1)
		go func(name string, check relwait.Check) {
			defer wg.Done()
			res := relwait.Poll(ctx, spec, check)
			if res.Err != nil {
				slog.Error("wait failed", "wait", name,
					"attempts", res.Attempts, "elapsed", res.Elapsed, "error", res.Err)
				return
			}
			slog.Info("condition met", "wait", name,
				"attempts", res.Attempts, "elapsed", res.Elapsed, "payload", res.Payload)
		}(name, check)
	}
	wg.Wait()
}
