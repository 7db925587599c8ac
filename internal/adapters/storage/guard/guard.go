// Package guard wraps the persistence ports with a circuit breaker and
// retry with exponential backoff. Storage-level faults trip the breaker and
// are retried; missing entities pass through untouched since they are answers,
// not failures.
//
// Construction:
//
//	g := guard.New(&cfg.Guard, "sqlite", metrics, logger)
//	codes := guard.Codes(g, store)
package guard

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/mkoskela/qualcore/internal/domain"
	"github.com/mkoskela/qualcore/internal/platform/config"
	"github.com/mkoskela/qualcore/internal/platform/telemetry"
)

// jitterFraction is the maximum jitter as a fraction of the delay (±25%).
const jitterFraction = 0.25

// retryPolicy holds the retry values extracted from config.RetryConfig using
// unexported types to avoid leaking the config package through the API.
type retryPolicy struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

// Guard is the shared breaker and retry state decorating one storage backend.
type Guard struct {
	breaker *gobreaker.CircuitBreaker[any]
	retry   retryPolicy
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New creates a Guard around the named backend. If metrics is nil, metric
// recording is skipped. If logger is nil, logging is discarded.
func New(cfg *config.GuardConfig, backend string, metrics *telemetry.Metrics, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        backend,
		MaxRequests: toUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, domain.ErrStorage)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Guard{
		breaker: cb,
		retry: retryPolicy{
			maxAttempts:     cfg.Retry.MaxAttempts,
			initialInterval: cfg.Retry.InitialInterval,
			maxInterval:     cfg.Retry.MaxInterval,
			multiplier:      cfg.Retry.Multiplier,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// execute runs fn through the breaker with retry. Only storage-level faults
// are retried; domain.ErrNotFound and context errors return immediately.
func (g *Guard) execute(ctx context.Context, op string, fn func() (any, error)) (any, error) {
	var lastErr error

	for attempt := range g.retry.maxAttempts {
		if attempt > 0 {
			if err := g.waitForRetry(ctx, op, attempt, lastErr); err != nil {
				return nil, err
			}
			g.metrics.RecordStorageRetry(ctx, op)
		}

		result, err := g.breaker.Execute(fn)
		if err == nil {
			return result, nil
		}

		lastErr = err
		if !isRetryable(err) {
			return nil, err
		}
	}

	return nil, lastErr
}

// waitForRetry calculates the backoff delay, logs the retry attempt at WARN
// level, and waits for the delay or context cancellation.
func (g *Guard) waitForRetry(ctx context.Context, op string, attempt int, lastErr error) error {
	delay := backoff(attempt, g.retry)

	g.logger.WarnContext(ctx, "retrying storage operation",
		slog.String("operation", op),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", g.retry.maxAttempts),
		slog.Duration("backoff", delay),
		slog.Any("error", lastErr),
	)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// backoff calculates the delay for a given retry attempt using exponential
// backoff with ±25% jitter. The attempt parameter is 1-indexed (attempt 1 is
// the first retry).
func backoff(attempt int, policy retryPolicy) time.Duration {
	delay := float64(policy.initialInterval) * math.Pow(policy.multiplier, float64(attempt-1))

	// Cap at max interval before applying jitter.
	if delay > float64(policy.maxInterval) {
		delay = float64(policy.maxInterval)
	}

	// Apply ±25% jitter to prevent thundering herd.
	jitter := delay * jitterFraction
	delay += jitter * (2*secureRandFloat64() - 1)

	if delay < 0 {
		delay = 0
	}

	return time.Duration(delay)
}

// IEEE 754 double-precision constants for random float generation.
const (
	significandBits = 53
	uint64Bits      = 64
)

// secureRandFloat64 returns a random float64 in [0, 1) using crypto/rand.
func secureRandFloat64() float64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0
	}
	return float64(binary.BigEndian.Uint64(b[:])>>(uint64Bits-significandBits)) / float64(uint64(1)<<significandBits)
}

// isRetryable determines whether an error warrants another attempt. Missing
// entities, breaker rejections and context errors are not retryable; storage
// faults are.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return false
	}
	return errors.Is(err, domain.ErrStorage)
}

// toUint32 safely converts an int to uint32, clamping negatives to zero.
func toUint32(v int) uint32 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
