package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golek-ongkir/internal/core/connectivity"
	"golek-ongkir/internal/core/logger"

	"go.uber.org/zap"
)

const (
	// DefaultMaxAttempts is the attempt bound when a Policy leaves MaxAttempts unset.
	DefaultMaxAttempts = 3
	// DefaultDelay is the fixed pause between attempts.
	DefaultDelay = 2 * time.Second
)

// ExhaustedError is returned once every attempt failed with a retryable error.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Policy retries an operation a bounded number of times with a fixed delay.
type Policy struct {
	// MaxAttempts is the total number of invocations, including the first.
	MaxAttempts int
	// Delay is the pause before each retry.
	Delay time.Duration
	// Probe is consulted before every attempt. Nil skips the check.
	Probe connectivity.Probe
	// Retryable decides whether a failure is worth another attempt. Nil retries nothing.
	Retryable func(error) bool

	logger *zap.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewPolicy creates a Policy, falling back to the defaults for non-positive values.
func NewPolicy(maxAttempts int, delay time.Duration, probe connectivity.Probe, retryable func(error) bool) *Policy {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if delay < 0 {
		delay = DefaultDelay
	}
	return &Policy{
		MaxAttempts: maxAttempts,
		Delay:       delay,
		Probe:       probe,
		Retryable:   retryable,
		logger:      logger.Named("retry"),
		sleep:       sleepCtx,
	}
}

// Do invokes op until it succeeds, fails with a non-retryable error, or the attempt bound is hit.
//
// A Disconnected probe result fails immediately with connectivity.ErrNoConnectivity,
// without invoking op, sleeping, or counting an attempt. An Unknown result is treated as connected.
func Do[T any](ctx context.Context, p *Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	log := p.logger
	if log == nil {
		log = zap.NewNop()
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := p.checkConnectivity(ctx, log); err != nil {
			return zero, err
		}

		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil || p.Retryable == nil || !p.Retryable(err) {
			return zero, err
		}

		log.Warn("Retryable upstream failure",
			zap.Int("attempt", attempt),
			zap.Int("attempts_left", maxAttempts-attempt),
			zap.Error(err),
		)

		if attempt == maxAttempts {
			break
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return zero, err
		}
	}

	return zero, &ExhaustedError{Attempts: maxAttempts, Err: lastErr}
}

func (p *Policy) checkConnectivity(ctx context.Context, log *zap.Logger) error {
	if p.Probe == nil {
		return nil
	}
	status, err := p.Probe.Check(ctx)
	switch status {
	case connectivity.StatusDisconnected:
		return connectivity.ErrNoConnectivity
	case connectivity.StatusUnknown:
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return ctxErr
		}
		log.Warn("Connectivity unknown, proceeding as connected", zap.Error(err))
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
