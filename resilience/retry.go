package resilience

import (
	"context"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig configures bounded retry with exponential backoff.
type RetryConfig struct {
	// MaxAttempts bounds the total number of calls, including the first.
	// Default: 3
	MaxAttempts int

	// InitialDelay is the backoff before the first retry.
	// Default: 100ms
	InitialDelay time.Duration

	// MaxDelay caps the backoff between attempts.
	// Default: 30s
	MaxDelay time.Duration

	// Multiplier scales the backoff each attempt.
	// Default: 2.0
	Multiplier float64

	// Jitter adds up to 25% random variance to each delay.
	Jitter bool

	// RetryIf reports whether a failure is worth another attempt.
	// A nil hook retries every error.
	RetryIf func(err error) bool

	// OnRetry runs before each backoff sleep.
	OnRetry func(attempt int, err error, delay time.Duration)
}

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.InitialDelay <= 0 {
		c.InitialDelay = 100 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	if c.Multiplier <= 0 {
		c.Multiplier = 2.0
	}
	if c.RetryIf == nil {
		c.RetryIf = func(err error) bool { return err != nil }
	}
	return c
}

// Retry re-runs an operation until it succeeds, the failure is not
// retryable, or attempts run out.
type Retry struct {
	cfg RetryConfig
}

// NewRetry returns a Retry with defaults applied for zero-value fields.
func NewRetry(cfg RetryConfig) *Retry {
	return &Retry{cfg: cfg.withDefaults()}
}

// Execute runs op until it succeeds or retries are exhausted. The context
// cancels the backoff sleep; the last failure is returned when attempts
// run out or the failure is not retryable.
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		if !r.cfg.RetryIf(err) || attempt >= r.cfg.MaxAttempts {
			return err
		}

		delay := r.backoff(attempt)
		if r.cfg.OnRetry != nil {
			r.cfg.OnRetry(attempt, err, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

// backoff returns the sleep before the next attempt: InitialDelay scaled
// by Multiplier^(attempt-1), capped at MaxDelay, plus jitter when enabled.
func (r *Retry) backoff(attempt int) time.Duration {
	d := time.Duration(float64(r.cfg.InitialDelay) * math.Pow(r.cfg.Multiplier, float64(attempt-1)))
	if d > r.cfg.MaxDelay {
		d = r.cfg.MaxDelay
	}
	if r.cfg.Jitter && d > 0 {
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		d += time.Duration(rand.Int64N(int64(d / 4)))
	}
	return d
}
