// Package resilience provides bounded retry and a timeout wrapper for
// remote Kaggle API calls.
//
// Retry backs off exponentially with optional jitter; its RetryIf hook
// lets the caller limit retries to failures that are actually transient,
// such as throttling or network errors. ExecuteWithTimeout bounds a
// single call and reports deadline expiry as ErrTimeout.
//
//	retry := resilience.NewRetry(resilience.RetryConfig{
//	    MaxAttempts:  3,
//	    InitialDelay: 100 * time.Millisecond,
//	    MaxDelay:     5 * time.Second,
//	    RetryIf:      isTransient,
//	})
//
//	err := retry.Execute(ctx, func(ctx context.Context) error {
//	    return callKaggle(ctx)
//	})
package resilience
