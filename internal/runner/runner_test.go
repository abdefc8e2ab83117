package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/openshift-eng/relwait"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func succeedingWait(name string) Wait {
	spec, _ := relwait.NewSpec(relwait.WithMaxAttempts(1), relwait.WithDelay(0))
	return Wait{
		Name: name,
		Spec: spec,
		Check: func(ctx context.Context) relwait.Outcome {
			return relwait.Success(name + "-payload")
		},
	}
}

func TestRunner_StopBeforeStart(t *testing.T) {
	r := New([]Wait{succeedingWait("a")}, 1, testLogger())

	// must not panic or deadlock
	r.Stop()

	if _, ok := <-r.Results(); ok {
		t.Error("expected results channel to be closed")
	}
}

func TestRunner_StopTwice(t *testing.T) {
	r := New([]Wait{succeedingWait("a")}, 1, testLogger())
	r.Start(context.Background())

	for range r.Results() {
	}

	r.Stop()
	r.Stop()
}

func TestRunner_AllWaitsEmitResults(t *testing.T) {
	waits := []Wait{succeedingWait("a"), succeedingWait("b"), succeedingWait("c")}
	r := New(waits, 2, testLogger())
	r.Start(context.Background())

	got := make(map[string]WaitResult)
	for res := range r.Results() {
		got[res.Name] = res
	}

	if len(got) != 3 {
		t.Fatalf("received %v results, want %v", len(got), 3)
	}
	for _, name := range []string{"a", "b", "c"} {
		res, ok := got[name]
		if !ok {
			t.Errorf("missing result for wait %q", name)
			continue
		}
		if res.Result.Err != nil {
			t.Errorf("wait %q: Err = %v, want nil", name, res.Result.Err)
		}
		if res.Result.Payload != name+"-payload" {
			t.Errorf("wait %q: Payload = %v, want %v", name, res.Result.Payload, name+"-payload")
		}
	}
}

func TestRunner_WaitsDoNotSerialize(t *testing.T) {
	// three waits that each sleep 50ms between two attempts; under a
	// concurrency cap of 3 they must overlap rather than run back to back
	spec, _ := relwait.NewSpec(relwait.WithMaxAttempts(2), relwait.WithDelay(50*time.Millisecond))

	var waits []Wait
	for _, name := range []string{"a", "b", "c"} {
		waits = append(waits, Wait{
			Name: name,
			Spec: spec,
			Check: func(ctx context.Context) relwait.Outcome {
				return relwait.NotYet("pending")
			},
		})
	}

	r := New(waits, 3, testLogger())
	start := time.Now()
	r.Start(context.Background())
	for range r.Results() {
	}

	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("batch took %v, want the waits to sleep concurrently", elapsed)
	}
}

func TestRunner_ConcurrencyCap(t *testing.T) {
	var inFlight, peak atomic.Int32

	spec, _ := relwait.NewSpec(relwait.WithMaxAttempts(1), relwait.WithDelay(0))
	var waits []Wait
	for i := 0; i < 8; i++ {
		waits = append(waits, Wait{
			Name: string(rune('a' + i)),
			Spec: spec,
			Check: func(ctx context.Context) relwait.Outcome {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				inFlight.Add(-1)
				return relwait.Success(nil)
			},
		})
	}

	r := New(waits, 2, testLogger())
	r.Start(context.Background())
	for range r.Results() {
	}

	if p := peak.Load(); p > 2 {
		t.Errorf("peak concurrent checks = %v, want at most 2", p)
	}
}

func TestRunner_PanickingCheckIsFatal(t *testing.T) {
	spec, _ := relwait.NewSpec(relwait.WithMaxAttempts(3), relwait.WithDelay(time.Millisecond))
	waits := []Wait{
		{
			Name: "bad",
			Spec: spec,
			Check: func(ctx context.Context) relwait.Outcome {
				panic("boom")
			},
		},
		succeedingWait("good"),
	}

	r := New(waits, 2, testLogger())
	r.Start(context.Background())

	got := make(map[string]WaitResult)
	for res := range r.Results() {
		got[res.Name] = res
	}

	var fatal *relwait.FatalError
	if !errors.As(got["bad"].Result.Err, &fatal) {
		t.Errorf("bad wait Err = %v, want *FatalError from panic recovery", got["bad"].Result.Err)
	}
	if got["good"].Result.Err != nil {
		t.Errorf("good wait Err = %v, want nil despite sibling panic", got["good"].Result.Err)
	}
}

func TestRunner_StopCancelsInFlightWaits(t *testing.T) {
	spec, _ := relwait.NewSpec(relwait.WithMaxAttempts(1000), relwait.WithDelay(10*time.Millisecond))
	waits := []Wait{
		{
			Name: "endless",
			Spec: spec,
			Check: func(ctx context.Context) relwait.Outcome {
				return relwait.NotYet("forever pending")
			},
		},
	}

	r := New(waits, 1, testLogger())
	r.Start(context.Background())

	done := make(chan WaitResult, 1)
	go func() {
		for res := range r.Results() {
			done <- res
		}
	}()

	time.Sleep(30 * time.Millisecond)
	r.Stop()

	select {
	case res := <-done:
		if !errors.Is(res.Result.Err, relwait.ErrCancelled) {
			t.Errorf("Err = %v, want ErrCancelled", res.Result.Err)
		}
	case <-time.After(time.Second):
		t.Error("timeout waiting for cancelled wait result")
	}
}

func TestRunner_LabelsCarriedThrough(t *testing.T) {
	w := succeedingWait("amd64")
	w.Labels = map[string]string{"arch": "amd64"}

	r := New([]Wait{w}, 1, testLogger())
	r.Start(context.Background())

	for res := range r.Results() {
		if res.Labels["arch"] != "amd64" {
			t.Errorf("Labels = %v, want arch label carried through", res.Labels)
		}
	}
}
