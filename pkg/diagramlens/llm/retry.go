package llm

import (
	"context"
	"math/rand/v2"
	"time"
)

// RetryConfig configures retry behavior for completion calls.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int

	// InitialBackoff is the starting backoff duration.
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration.
	MaxBackoff time.Duration

	// BackoffFactor is the multiplier applied to backoff after each attempt.
	BackoffFactor float64

	// Jitter is the random jitter factor (0.0-1.0).
	Jitter float64

	// RetryableFunc optionally overrides IsRetryable.
	RetryableFunc func(error) bool

	// OnRetry is called after a failed attempt that will be retried.
	OnRetry func(attempt int, err error)
}

// DefaultRetry is the standard retry configuration.
var DefaultRetry = RetryConfig{
	MaxAttempts:    3,
	InitialBackoff: 500 * time.Millisecond,
	MaxBackoff:     10 * time.Second,
	BackoffFactor:  2.0,
	Jitter:         0.1,
}

// NoRetry disables retries.
var NoRetry = RetryConfig{
	MaxAttempts: 1,
}

// RetryResult contains the result of a retry operation.
type RetryResult[T any] struct {
	// Value is the result if successful.
	Value T

	// Err is the final error if all attempts failed.
	Err error

	// Attempts is the number of attempts made.
	Attempts int

	// Duration is the total time spent.
	Duration time.Duration
}

// WithRetryContext runs fn until it succeeds, returns a non-retryable
// error, exhausts MaxAttempts, or ctx is done.
func WithRetryContext[T any](ctx context.Context, cfg RetryConfig, fn func(context.Context) (T, error)) RetryResult[T] {
	start := time.Now()
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	isRetryable := cfg.RetryableFunc
	if isRetryable == nil {
		isRetryable = IsRetryable
	}

	backoff := cfg.InitialBackoff
	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return RetryResult[T]{Err: err, Attempts: attempt, Duration: time.Since(start)}
		}

		value, err := fn(ctx)
		if err == nil {
			return RetryResult[T]{Value: value, Attempts: attempt + 1, Duration: time.Since(start)}
		}
		lastErr = err

		if !isRetryable(err) || attempt == cfg.MaxAttempts-1 {
			return RetryResult[T]{Err: err, Attempts: attempt + 1, Duration: time.Since(start)}
		}
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, err)
		}

		select {
		case <-ctx.Done():
			return RetryResult[T]{Err: ctx.Err(), Attempts: attempt + 1, Duration: time.Since(start)}
		case <-time.After(calculateBackoff(backoff, cfg.Jitter)):
		}

		backoff = time.Duration(float64(backoff) * cfg.BackoffFactor)
		if cfg.MaxBackoff > 0 && backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}

	return RetryResult[T]{Err: lastErr, Attempts: cfg.MaxAttempts, Duration: time.Since(start)}
}

// calculateBackoff returns the backoff duration with jitter applied.
func calculateBackoff(base time.Duration, jitter float64) time.Duration {
	if jitter <= 0 || base <= 0 {
		return base
	}
	jitterAmount := float64(base) * jitter * (rand.Float64()*2 - 1)
	return time.Duration(float64(base) + jitterAmount)
}
