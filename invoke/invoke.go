package invoke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/kagglemcp/cache"
	"github.com/jonwraymond/kagglemcp/fault"
	"github.com/jonwraymond/kagglemcp/observe"
	"github.com/jonwraymond/kagglemcp/resilience"
)

// ErrNilCall is returned when an operation has no call function.
var ErrNilCall = errors.New("invoke: operation has no call function")

// Operation describes a single invocation.
type Operation struct {
	// Name identifies the operation, e.g. "list_competitions".
	Name string

	// Resource is the cache resource family (cache.ResourceCompetitions
	// and friends). Families without a policy TTL are never cached.
	Resource string

	// Args are the normalized arguments; they feed both the cache key
	// and nothing else, so callers must validate before building them.
	Args map[string]any

	// Call performs the remote work and returns a JSON-serializable result.
	Call func(ctx context.Context) (any, error)
}

// Config tunes an Invoker. Zero values select the defaults.
type Config struct {
	// RemoteTimeout bounds a single remote call, including retries of it.
	// Default: 60s.
	RemoteTimeout time.Duration

	// Retry configures the retry wrapper around remote calls. RetryIf is
	// always overridden to retry only transient failures.
	Retry resilience.RetryConfig
}

// Invoker executes operations with caching, collapsing, retry and
// classification. Safe for concurrent use.
type Invoker struct {
	cache      cache.Cache
	keyer      cache.Keyer
	policy     cache.Policy
	classifier *fault.Classifier
	retry      *resilience.Retry
	timeout    time.Duration
	group      singleflight.Group
	tracer     observe.Tracer
	metrics    observe.Metrics
	logger     observe.Logger
}

// New builds an Invoker. Nil observability arguments degrade to noops;
// a nil cache disables caching entirely.
func New(c cache.Cache, keyer cache.Keyer, policy cache.Policy, classifier *fault.Classifier, cfg Config, tracer observe.Tracer, metrics observe.Metrics, logger observe.Logger) *Invoker {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if classifier == nil {
		classifier = fault.NewClassifier(nil)
	}
	if tracer == nil {
		tracer = observe.NewNoopTracer()
	}
	if metrics == nil {
		metrics = observe.NoopMetrics()
	}
	if logger == nil {
		logger = observe.NoopLogger()
	}
	if cfg.RemoteTimeout <= 0 {
		cfg.RemoteTimeout = 60 * time.Second
	}
	cfg.Retry.RetryIf = fault.Retryable
	if cfg.Retry.OnRetry == nil {
		cfg.Retry.OnRetry = func(attempt int, err error, delay time.Duration) {
			logger.Debug(context.Background(), "retrying remote call",
				observe.Field{Key: "attempt", Value: attempt},
				observe.Field{Key: "delay", Value: delay.String()},
				observe.Field{Key: "error", Value: err.Error()},
			)
		}
	}

	return &Invoker{
		cache:      c,
		keyer:      keyer,
		policy:     policy,
		classifier: classifier,
		retry:      resilience.NewRetry(cfg.Retry),
		timeout:    cfg.RemoteTimeout,
		tracer:     tracer,
		metrics:    metrics,
		logger:     logger,
	}
}

// Invoke runs the operation and returns its result as JSON.
//
// Contract:
//   - Results are cached per the policy TTL for op.Resource; errors and
//     zero-TTL resources are never cached.
//   - Concurrent invocations sharing a cache key produce one remote call.
//   - Every returned error is a *fault.Envelope.
func (inv *Invoker) Invoke(ctx context.Context, op Operation) ([]byte, error) {
	if op.Call == nil {
		return nil, inv.classifier.Classify(ctx, op.Name, ErrNilCall)
	}

	meta := observe.OpMeta{Name: op.Name, Resource: op.Resource}
	ctx, span := inv.tracer.StartSpan(ctx, meta)
	start := time.Now()

	data, err := inv.invoke(ctx, op, meta)

	inv.metrics.RecordInvocation(ctx, meta, time.Since(start), err)
	inv.tracer.EndSpan(span, err)

	if err != nil {
		return nil, inv.classifier.Classify(ctx, op.Name, err)
	}
	return data, nil
}

func (inv *Invoker) invoke(ctx context.Context, op Operation, meta observe.OpMeta) ([]byte, error) {
	ttl := inv.policy.TTL(op.Resource)
	if inv.cache == nil || ttl <= 0 {
		return inv.remote(ctx, op, meta)
	}

	key, err := inv.keyer.Key(op.Name, op.Args)
	if err != nil {
		return nil, err
	}
	if err := cache.ValidateKey(key); err != nil {
		return nil, err
	}

	// Collapse concurrent invocations of the same key into one remote
	// call; followers share the leader's result.
	v, err, _ := inv.group.Do(key, func() (any, error) {
		if cached, ok := inv.cache.Get(ctx, key); ok {
			inv.metrics.RecordCache(ctx, meta, true)
			inv.logger.Debug(ctx, "cache hit",
				observe.Field{Key: "op", Value: op.Name},
				observe.Field{Key: "key", Value: key},
			)
			return cached, nil
		}
		inv.metrics.RecordCache(ctx, meta, false)

		data, err := inv.remote(ctx, op, meta)
		if err != nil {
			return nil, err
		}

		if err := inv.cache.Set(ctx, key, data, ttl); err != nil {
			inv.logger.Warn(ctx, "cache store failed",
				observe.Field{Key: "op", Value: op.Name},
				observe.Field{Key: "key", Value: key},
				observe.Field{Key: "error", Value: err.Error()},
			)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// remote performs the call with retry and a total time budget, then
// serializes the result.
func (inv *Invoker) remote(ctx context.Context, op Operation, meta observe.OpMeta) ([]byte, error) {
	var result any

	err := resilience.ExecuteWithTimeout(ctx, inv.timeout, func(ctx context.Context) error {
		return inv.retry.Execute(ctx, func(ctx context.Context) error {
			inv.metrics.RecordRemote(ctx, meta)
			var callErr error
			result, callErr = op.Call(ctx)
			return callErr
		})
	})
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("invoke: serializing %s result: %w", op.Name, err)
	}
	return data, nil
}

// Invalidate drops the cached result for one operation and argument
// set. The next invocation goes remote.
func (inv *Invoker) Invalidate(ctx context.Context, name string, args map[string]any) error {
	if inv.cache == nil {
		return nil
	}
	key, err := inv.keyer.Key(name, args)
	if err != nil {
		return err
	}
	return inv.cache.Delete(ctx, key)
}
