package checks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openshift-eng/relwait"
)

func stableServer(t *testing.T, name string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "` + name + `", "phase": "Accepted", "pullSpec": "quay.io/ocp/release:` + name + `"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestStableRelease_Accepted(t *testing.T) {
	server := stableServer(t, "4.13.2")

	check, err := StableRelease(server.URL, "4.13.2")
	if err != nil {
		t.Fatalf("StableRelease() error = %v", err)
	}

	outcome := check(context.Background())
	if outcome.Status != relwait.StatusSuccess {
		t.Fatalf("Status = %v, want %v (err: %v)", outcome.Status, relwait.StatusSuccess, outcome.Err)
	}
	if outcome.Payload != "quay.io/ocp/release:4.13.2" {
		t.Errorf("Payload = %v, want the pull spec", outcome.Payload)
	}
}

func TestStableRelease_DifferentName(t *testing.T) {
	server := stableServer(t, "4.13.1")

	check, _ := StableRelease(server.URL, "4.13.2")

	outcome := check(context.Background())
	if outcome.Status != relwait.StatusRetryable {
		t.Fatalf("Status = %v, want %v", outcome.Status, relwait.StatusRetryable)
	}

	var pending *relwait.PendingError
	if !errors.As(outcome.Err, &pending) {
		t.Fatalf("Err = %v, want *PendingError", outcome.Err)
	}
}

func TestStableRelease_NeverFatal(t *testing.T) {
	// every failure mode must stay retryable: this wait relies purely on
	// the attempt cap
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()
	mux.HandleFunc("/garbage", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	mux.HandleFunc("/error", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	})

	for _, path := range []string{"/garbage", "/error", "/missing"} {
		check, err := StableRelease(server.URL+path, "4.13.2")
		if err != nil {
			t.Fatalf("StableRelease(%s) error = %v", path, err)
		}
		if outcome := check(context.Background()); outcome.Status != relwait.StatusRetryable {
			t.Errorf("check(%s) Status = %v, want %v", path, outcome.Status, relwait.StatusRetryable)
		}
	}
}

func TestStableRelease_InvalidInputs(t *testing.T) {
	if _, err := StableRelease("", "4.13.2"); err == nil {
		t.Error("StableRelease() expected error for empty endpoint, got nil")
	}
	if _, err := StableRelease("https://example.com", ""); err == nil {
		t.Error("StableRelease() expected error for empty release, got nil")
	}
}
