package invoke

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonwraymond/kagglemcp/cache"
	"github.com/jonwraymond/kagglemcp/fault"
	"github.com/jonwraymond/kagglemcp/kaggle"
	"github.com/jonwraymond/kagglemcp/resilience"
)

func newTestInvoker(t *testing.T) *Invoker {
	t.Helper()
	return New(
		cache.NewMemoryCache(),
		cache.NewDefaultKeyer(),
		cache.DefaultPolicy(),
		fault.NewClassifier(nil),
		Config{},
		nil, nil, nil,
	)
}

func countingOp(name, resource string, calls *atomic.Int64, result any) Operation {
	return Operation{
		Name:     name,
		Resource: resource,
		Args:     map[string]any{"search": "titanic"},
		Call: func(ctx context.Context) (any, error) {
			calls.Add(1)
			return result, nil
		},
	}
}

func TestInvoke_ReturnsJSON(t *testing.T) {
	inv := newTestInvoker(t)
	var calls atomic.Int64

	data, err := inv.Invoke(context.Background(), countingOp("list_competitions", cache.ResourceCompetitions, &calls, map[string]string{"title": "Titanic"}))
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if decoded["title"] != "Titanic" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestInvoke_CacheHitSuppressesRemote(t *testing.T) {
	inv := newTestInvoker(t)
	var calls atomic.Int64
	op := countingOp("list_competitions", cache.ResourceCompetitions, &calls, "result")

	for i := 0; i < 3; i++ {
		if _, err := inv.Invoke(context.Background(), op); err != nil {
			t.Fatalf("Invoke %d failed: %v", i, err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("remote calls = %d, want 1", got)
	}
}

func TestInvoke_DistinctArgsMissCache(t *testing.T) {
	inv := newTestInvoker(t)
	var calls atomic.Int64

	for _, search := range []string{"titanic", "housing"} {
		op := Operation{
			Name:     "search_datasets",
			Resource: cache.ResourceDatasets,
			Args:     map[string]any{"search": search},
			Call: func(ctx context.Context) (any, error) {
				calls.Add(1)
				return search, nil
			},
		}
		if _, err := inv.Invoke(context.Background(), op); err != nil {
			t.Fatalf("Invoke failed: %v", err)
		}
	}

	if got := calls.Load(); got != 2 {
		t.Errorf("remote calls = %d, want 2", got)
	}
}

func TestInvoke_DownloadsNeverCached(t *testing.T) {
	inv := newTestInvoker(t)
	var calls atomic.Int64
	op := countingOp("download_dataset", cache.ResourceDownloads, &calls, "done")

	for i := 0; i < 3; i++ {
		if _, err := inv.Invoke(context.Background(), op); err != nil {
			t.Fatalf("Invoke failed: %v", err)
		}
	}

	if got := calls.Load(); got != 3 {
		t.Errorf("remote calls = %d, want 3 (downloads bypass the cache)", got)
	}
}

func TestInvoke_ErrorsNotCached(t *testing.T) {
	inv := newTestInvoker(t)
	var calls atomic.Int64
	fail := true

	op := Operation{
		Name:     "list_models",
		Resource: cache.ResourceModels,
		Args:     map[string]any{},
		Call: func(ctx context.Context) (any, error) {
			calls.Add(1)
			if fail {
				return nil, &kaggle.StatusError{Op: "models/list", Code: 404, Status: "404 Not Found"}
			}
			return "models", nil
		},
	}

	if _, err := inv.Invoke(context.Background(), op); err == nil {
		t.Fatal("expected failure")
	}
	fail = false
	if _, err := inv.Invoke(context.Background(), op); err != nil {
		t.Fatalf("second Invoke failed: %v", err)
	}

	if got := calls.Load(); got != 2 {
		t.Errorf("remote calls = %d, want 2 (failure must not be cached)", got)
	}
}

func TestInvoke_ErrorsAreEnvelopes(t *testing.T) {
	inv := newTestInvoker(t)

	op := Operation{
		Name:     "get_competition_details",
		Resource: cache.ResourceCompetitions,
		Args:     map[string]any{},
		Call: func(ctx context.Context) (any, error) {
			return nil, &kaggle.StatusError{Op: "competitions/list", Code: 403, Status: "403 Forbidden"}
		},
	}

	_, err := inv.Invoke(context.Background(), op)
	env, ok := fault.AsEnvelope(err)
	if !ok {
		t.Fatalf("expected an envelope, got: %v", err)
	}
	if env.Kind != fault.KindForbidden {
		t.Errorf("Kind = %v, want KindForbidden", env.Kind)
	}
}

func TestInvoke_AuthFailureNotRetried(t *testing.T) {
	var calls atomic.Int64
	inv := New(
		cache.NewMemoryCache(),
		cache.NewDefaultKeyer(),
		cache.DefaultPolicy(),
		fault.NewClassifier(nil),
		Config{Retry: retryFast(3)},
		nil, nil, nil,
	)

	op := Operation{
		Name:     "list_competitions",
		Resource: cache.ResourceCompetitions,
		Args:     map[string]any{},
		Call: func(ctx context.Context) (any, error) {
			calls.Add(1)
			return nil, &kaggle.StatusError{Op: "competitions/list", Code: 401, Status: "401 Unauthorized"}
		},
	}

	if _, err := inv.Invoke(context.Background(), op); err == nil {
		t.Fatal("expected failure")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("remote calls = %d, want 1 (auth failures are deterministic)", got)
	}
}

func TestInvoke_RateLimitRetriedToBound(t *testing.T) {
	var calls atomic.Int64
	inv := New(
		cache.NewMemoryCache(),
		cache.NewDefaultKeyer(),
		cache.DefaultPolicy(),
		fault.NewClassifier(nil),
		Config{Retry: retryFast(3)},
		nil, nil, nil,
	)

	op := Operation{
		Name:     "search_datasets",
		Resource: cache.ResourceDatasets,
		Args:     map[string]any{},
		Call: func(ctx context.Context) (any, error) {
			calls.Add(1)
			return nil, &kaggle.StatusError{Op: "datasets/list", Code: 429, Status: "429 Too Many Requests"}
		},
	}

	_, err := inv.Invoke(context.Background(), op)
	env, ok := fault.AsEnvelope(err)
	if !ok {
		t.Fatalf("expected an envelope, got: %v", err)
	}
	if env.Kind != fault.KindRateLimited {
		t.Errorf("Kind = %v, want KindRateLimited", env.Kind)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("remote calls = %d, want 3 (retried to the attempt bound)", got)
	}
}

func TestInvoke_ConcurrentCallsCollapse(t *testing.T) {
	inv := newTestInvoker(t)

	var calls atomic.Int64
	release := make(chan struct{})
	op := Operation{
		Name:     "list_competitions",
		Resource: cache.ResourceCompetitions,
		Args:     map[string]any{"page": 1},
		Call: func(ctx context.Context) (any, error) {
			calls.Add(1)
			<-release
			return "shared", nil
		},
	}

	const n = 8
	var wg sync.WaitGroup
	results := make([][]byte, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = inv.Invoke(context.Background(), op)
		}(i)
	}

	// Let every goroutine reach the singleflight before releasing.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("Invoke %d failed: %v", i, errs[i])
		}
		if string(results[i]) != `"shared"` {
			t.Errorf("result %d = %s", i, results[i])
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("remote calls = %d, want 1 (collapsed)", got)
	}
}

func TestInvoke_InvalidateForcesRefresh(t *testing.T) {
	inv := newTestInvoker(t)
	var calls atomic.Int64
	op := countingOp("list_competitions", cache.ResourceCompetitions, &calls, "v")

	if _, err := inv.Invoke(context.Background(), op); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if err := inv.Invalidate(context.Background(), op.Name, op.Args); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, err := inv.Invoke(context.Background(), op); err != nil {
		t.Fatalf("Invoke after invalidate failed: %v", err)
	}

	if got := calls.Load(); got != 2 {
		t.Errorf("remote calls = %d, want 2", got)
	}
}

func TestInvoke_NilCall(t *testing.T) {
	inv := newTestInvoker(t)

	_, err := inv.Invoke(context.Background(), Operation{Name: "broken"})
	env, ok := fault.AsEnvelope(err)
	if !ok {
		t.Fatalf("expected an envelope, got: %v", err)
	}
	if env.Kind != fault.KindUnknown {
		t.Errorf("Kind = %v, want KindUnknown", env.Kind)
	}
}

func TestInvoke_NilCacheGoesRemote(t *testing.T) {
	inv := New(nil, nil, cache.DefaultPolicy(), nil, Config{}, nil, nil, nil)
	var calls atomic.Int64
	op := countingOp("list_competitions", cache.ResourceCompetitions, &calls, "v")

	for i := 0; i < 2; i++ {
		if _, err := inv.Invoke(context.Background(), op); err != nil {
			t.Fatalf("Invoke failed: %v", err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("remote calls = %d, want 2", got)
	}
}

func retryFast(attempts int) resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		Jitter:       false,
	}
}
