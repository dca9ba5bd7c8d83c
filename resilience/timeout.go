package resilience

import (
	"context"
	"errors"
	"time"
)

// DefaultTimeout bounds an operation when the caller passes no limit.
const DefaultTimeout = 30 * time.Second

// ExecuteWithTimeout runs op under a deadline. When the deadline expires
// before op returns, the result is ErrTimeout and the derived context is
// canceled; op is expected to honor that cancellation. A non-positive
// timeout falls back to DefaultTimeout.
func ExecuteWithTimeout(ctx context.Context, timeout time.Duration, op func(context.Context) error) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- op(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ctx.Err()
	}
}
