package checks

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/openshift-eng/relwait"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on unix utilities")
	}
}

func TestCommand_ExitZeroNoPattern(t *testing.T) {
	skipWithoutShell(t)

	check, err := Command("echo build complete", "")
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}

	outcome := check(context.Background())
	if outcome.Status != relwait.StatusSuccess {
		t.Fatalf("Status = %v, want %v (err: %v)", outcome.Status, relwait.StatusSuccess, outcome.Err)
	}
	if outcome.Payload != "build complete" {
		t.Errorf("Payload = %v, want trimmed output", outcome.Payload)
	}
}

func TestCommand_PatternCaptureGroup(t *testing.T) {
	skipWithoutShell(t)

	check, err := Command("echo openshift-4.14.9-x86_64", `openshift-(4\.14\.\d+)-`)
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}

	outcome := check(context.Background())
	if outcome.Status != relwait.StatusSuccess {
		t.Fatalf("Status = %v, want %v (err: %v)", outcome.Status, relwait.StatusSuccess, outcome.Err)
	}
	if outcome.Payload != "4.14.9" {
		t.Errorf("Payload = %v, want first capture group %q", outcome.Payload, "4.14.9")
	}
}

func TestCommand_PatternNoMatch(t *testing.T) {
	skipWithoutShell(t)

	check, _ := Command("echo still composing", `compose complete`)

	outcome := check(context.Background())
	if outcome.Status != relwait.StatusRetryable {
		t.Fatalf("Status = %v, want %v", outcome.Status, relwait.StatusRetryable)
	}

	var pending *relwait.PendingError
	if !errors.As(outcome.Err, &pending) {
		t.Errorf("Err = %v, want *PendingError when output doesn't match yet", outcome.Err)
	}
}

func TestCommand_NonZeroExitRetries(t *testing.T) {
	skipWithoutShell(t)

	check, _ := Command("false", "")

	outcome := check(context.Background())
	if outcome.Status != relwait.StatusRetryable {
		t.Fatalf("Status = %v, want %v", outcome.Status, relwait.StatusRetryable)
	}

	var pending *relwait.PendingError
	if errors.As(outcome.Err, &pending) {
		t.Errorf("Err = %v, want a process error, not *PendingError", outcome.Err)
	}
}

func TestCommand_TimeoutRetries(t *testing.T) {
	skipWithoutShell(t)

	check, err := Command("sleep 5", "", WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}

	start := time.Now()
	outcome := check(context.Background())
	if outcome.Status != relwait.StatusRetryable {
		t.Errorf("Status = %v, want %v", outcome.Status, relwait.StatusRetryable)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("check took %v, want the per-attempt timeout to cut it off", elapsed)
	}
}

func TestCommand_Env(t *testing.T) {
	skipWithoutShell(t)

	check, err := Command("sh -c 'echo $RELWAIT_TEST_VAR'", "", WithEnv("RELWAIT_TEST_VAR", "plashet-ready"))
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}

	outcome := check(context.Background())
	if outcome.Status != relwait.StatusSuccess {
		t.Fatalf("Status = %v, want %v (err: %v)", outcome.Status, relwait.StatusSuccess, outcome.Err)
	}
	if outcome.Payload != "plashet-ready" {
		t.Errorf("Payload = %v, want env value", outcome.Payload)
	}
}

func TestCommand_InvalidInputs(t *testing.T) {
	tests := []struct {
		name    string
		command string
		pattern string
	}{
		{"empty command", "", ""},
		{"unbalanced quote", `echo "unterminated`, ""},
		{"bad pattern", "echo hi", `(`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Command(tt.command, tt.pattern)
			if err == nil {
				t.Error("Command() expected error, got nil")
			}
		})
	}
}

func TestCommand_ChecksDoNotRetryInternally(t *testing.T) {
	skipWithoutShell(t)

	// a failing check returns after one execution; the poller owns retries
	check, _ := Command("false", "")

	start := time.Now()
	check(context.Background())
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("single attempt took %v, want one immediate execution", elapsed)
	}
}
