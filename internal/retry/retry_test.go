package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"payguard/internal/breaker"
	"payguard/internal/gateway"
)

// fakeCircuit counts recorder calls and can be forced open, or trip itself
// after a number of recorded failures.
type fakeCircuit struct {
	open        bool
	openAfter   int // trips once failures reaches this, 0 = never
	failures    int
	successes   int
	isOpenCalls int
}

func (f *fakeCircuit) IsOpen(context.Context, string) bool {
	f.isOpenCalls++
	return f.open
}

func (f *fakeCircuit) RecordSuccess(context.Context, string) {
	f.successes++
}

func (f *fakeCircuit) RecordFailure(context.Context, string, breaker.Thresholds) {
	f.failures++
	if f.openAfter > 0 && f.failures >= f.openAfter {
		f.open = true
	}
}

func newTestEngine(circuit Circuit) (*Engine, *[]time.Duration) {
	e := NewEngine(circuit, breaker.DefaultThresholds(), zap.NewNop().Sugar())
	var delays []time.Duration
	e.sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	return e, &delays
}

func TestExecuteRetryBoundAndBackoff(t *testing.T) {
	t.Parallel()

	circuit := &fakeCircuit{}
	engine, delays := newTestEngine(circuit)

	policy := Policy{MaxRetries: 3, RetryDelay: 100 * time.Millisecond, BackoffMultiplier: 2.0}

	attempts := 0
	lastErr := &gateway.Error{StatusCode: 500, Description: "internal error"}
	_, err := Execute(context.Background(), engine, "payment_gateway:upi", policy, func(context.Context) (string, error) {
		attempts++
		return "", lastErr
	})

	if attempts != 4 {
		t.Fatalf("expected 4 attempts for MaxRetries=3, got %d", attempts)
	}
	if !errors.Is(err, lastErr) {
		t.Fatalf("expected last error surfaced, got %v", err)
	}

	want := []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}
	if len(*delays) != len(want) {
		t.Fatalf("expected %d delays, got %d", len(want), len(*delays))
	}
	for i, d := range want {
		if (*delays)[i] != d {
			t.Errorf("delay %d: expected %v, got %v", i, d, (*delays)[i])
		}
	}
	if circuit.failures != 4 {
		t.Errorf("expected 4 recorded failures, got %d", circuit.failures)
	}
}

func TestExecuteOpenCircuitFailsFast(t *testing.T) {
	t.Parallel()

	circuit := &fakeCircuit{open: true}
	engine, _ := newTestEngine(circuit)

	attempts := 0
	_, err := Execute(context.Background(), engine, "payment_gateway:upi", DefaultPolicy(), func(context.Context) (string, error) {
		attempts++
		return "ok", nil
	})

	if attempts != 0 {
		t.Fatalf("open circuit must not invoke the operation, got %d attempts", attempts)
	}
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestExecuteSuccessResetsCircuit(t *testing.T) {
	t.Parallel()

	circuit := &fakeCircuit{}
	engine, delays := newTestEngine(circuit)

	got, err := Execute(context.Background(), engine, "payment_gateway:upi", DefaultPolicy(), func(context.Context) (string, error) {
		return "order_1", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "order_1" {
		t.Fatalf("expected order_1, got %q", got)
	}
	if circuit.successes != 1 {
		t.Errorf("expected 1 recorded success, got %d", circuit.successes)
	}
	if len(*delays) != 0 {
		t.Errorf("no retries expected, got %d delays", len(*delays))
	}
}

func TestExecuteRecoversAfterTransientFailure(t *testing.T) {
	t.Parallel()

	circuit := &fakeCircuit{}
	engine, _ := newTestEngine(circuit)

	attempts := 0
	got, err := Execute(context.Background(), engine, "payment_gateway:upi", DefaultPolicy(), func(context.Context) (string, error) {
		attempts++
		if attempts == 1 {
			return "", &gateway.Error{StatusCode: 503}
		}
		return "pay_1", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "pay_1" {
		t.Fatalf("expected pay_1, got %q", got)
	}
	if circuit.failures != 1 || circuit.successes != 1 {
		t.Errorf("expected 1 failure + 1 success, got %d/%d", circuit.failures, circuit.successes)
	}
}

func TestExecuteDoesNotRetryCallerMistakes(t *testing.T) {
	t.Parallel()

	circuit := &fakeCircuit{}
	engine, delays := newTestEngine(circuit)

	attempts := 0
	_, err := Execute(context.Background(), engine, "payment_gateway:upi", DefaultPolicy(), func(context.Context) (string, error) {
		attempts++
		return "", &gateway.Error{StatusCode: 400, Code: "BAD_REQUEST_ERROR"}
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("caller mistakes must not be retried, got %d attempts", attempts)
	}
	if circuit.failures != 0 {
		t.Errorf("caller mistakes must not count toward the circuit, got %d", circuit.failures)
	}
	if len(*delays) != 0 {
		t.Errorf("no backoff expected, got %d delays", len(*delays))
	}
}

func TestExecuteStopsWhenCircuitOpensMidCall(t *testing.T) {
	t.Parallel()

	circuit := &fakeCircuit{openAfter: 2}
	engine, _ := newTestEngine(circuit)

	policy := Policy{MaxRetries: 10, RetryDelay: time.Millisecond, BackoffMultiplier: 1.0}

	attempts := 0
	_, err := Execute(context.Background(), engine, "payment_gateway:upi", policy, func(context.Context) (string, error) {
		attempts++
		return "", &gateway.Error{StatusCode: 500}
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 2 {
		t.Fatalf("expected retries to stop once circuit opened, got %d attempts", attempts)
	}
}

func TestExecuteHonorsContextDuringBackoff(t *testing.T) {
	t.Parallel()

	circuit := &fakeCircuit{}
	engine := NewEngine(circuit, breaker.DefaultThresholds(), zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := Policy{MaxRetries: 3, RetryDelay: time.Hour, BackoffMultiplier: 1.0}

	_, err := Execute(ctx, engine, "payment_gateway:upi", policy, func(context.Context) (string, error) {
		return "", &gateway.Error{StatusCode: 500}
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
