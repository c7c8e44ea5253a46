// Package retry wraps single gateway operations with bounded
// exponential-backoff retry, consulting the shared circuit store before and
// after every attempt.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"payguard/internal/breaker"
)

// ErrCircuitOpen is returned without attempting the network when the circuit
// for the target API has tripped. The message is safe to surface to callers.
var ErrCircuitOpen = errors.New("service is temporarily disabled, please try again later")

// Policy bounds one wrapped call. MaxRetries is an upper bound across the
// whole call: MaxRetries=3 permits 4 attempts in total.
type Policy struct {
	MaxRetries        int
	RetryDelay        time.Duration
	BackoffMultiplier float64
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:        2,
		RetryDelay:        500 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

// Circuit is the slice of the breaker store the engine needs.
type Circuit interface {
	IsOpen(ctx context.Context, apiName string) bool
	RecordSuccess(ctx context.Context, apiName string)
	RecordFailure(ctx context.Context, apiName string, th breaker.Thresholds)
}

type Engine struct {
	circuit    Circuit
	thresholds breaker.Thresholds
	logger     *zap.SugaredLogger
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewEngine(circuit Circuit, thresholds breaker.Thresholds, logger *zap.SugaredLogger) *Engine {
	return &Engine{
		circuit:    circuit,
		thresholds: thresholds,
		logger:     logger,
		sleep:      sleepContext,
	}
}

// Execute runs op under the engine's retry and circuit policy. Attempts run
// strictly sequentially; each backoff delay is awaited in full.
func Execute[T any](ctx context.Context, e *Engine, apiName string, policy Policy, op func(context.Context) (T, error)) (T, error) {
	var zero T

	if e.circuit.IsOpen(ctx, apiName) {
		return zero, fmt.Errorf("%s: %w", apiName, ErrCircuitOpen)
	}

	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			e.circuit.RecordSuccess(ctx, apiName)
			return result, nil
		}

		cls := Classify(err)
		if cls.CountsTowardCircuit {
			e.circuit.RecordFailure(ctx, apiName, e.thresholds)
		}

		if !cls.Retryable || attempt >= policy.MaxRetries || e.circuit.IsOpen(ctx, apiName) {
			return zero, err
		}

		delay := backoff(policy, attempt)
		e.logger.Warnw("gateway call failed, retrying",
			"api", apiName,
			"attempt", attempt+1,
			"delay", delay,
			"error", err,
		)
		if err := e.sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
}

// backoff is retryDelay * multiplier^attempt.
func backoff(policy Policy, attempt int) time.Duration {
	return time.Duration(float64(policy.RetryDelay) * math.Pow(policy.BackoffMultiplier, float64(attempt)))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
