package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// FaultKinder is implemented by errors that carry a classified fault kind.
// The metrics layer uses it to label error counters without depending on
// the fault package.
type FaultKinder interface {
	FaultKind() string
}

// Metrics records invocation metrics for operations.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordInvocation records a completed invocation with duration and error status.
	RecordInvocation(ctx context.Context, meta OpMeta, duration time.Duration, err error)

	// RecordCache records a cache lookup outcome for an invocation.
	RecordCache(ctx context.Context, meta OpMeta, hit bool)

	// RecordRemote records one call issued to the remote API.
	RecordRemote(ctx context.Context, meta OpMeta)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	cacheHits    metric.Int64Counter
	cacheMisses  metric.Int64Counter
	remoteCalls  metric.Int64Counter
}

// NewMetrics creates a Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	totalCount, err := meter.Int64Counter(
		"op.invoke.total",
		metric.WithDescription("Total number of operation invocations"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"op.invoke.errors",
		metric.WithDescription("Total number of invocation errors by fault kind"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"op.invoke.duration_ms",
		metric.WithDescription("Operation invocation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(
		"op.cache.hits",
		metric.WithDescription("Invocations answered from the result cache"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	cacheMisses, err := meter.Int64Counter(
		"op.cache.misses",
		metric.WithDescription("Invocations that missed the result cache"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, err
	}

	remoteCalls, err := meter.Int64Counter(
		"op.remote.calls",
		metric.WithDescription("Calls issued to the remote Kaggle API"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
		cacheHits:    cacheHits,
		cacheMisses:  cacheMisses,
		remoteCalls:  remoteCalls,
	}, nil
}

func (m *metricsImpl) attrs(meta OpMeta) metric.MeasurementOption {
	attrs := []attribute.KeyValue{
		attribute.String("op.name", meta.Name),
	}
	if meta.Resource != "" {
		attrs = append(attrs, attribute.String("op.resource", meta.Resource))
	}
	return metric.WithAttributes(attrs...)
}

// RecordInvocation records metrics for a completed invocation.
func (m *metricsImpl) RecordInvocation(ctx context.Context, meta OpMeta, duration time.Duration, err error) {
	opt := m.attrs(meta)

	m.totalCount.Add(ctx, 1, opt)

	if err != nil {
		kind := "unknown"
		if fk, ok := err.(FaultKinder); ok {
			kind = fk.FaultKind()
		}
		m.errorCount.Add(ctx, 1, opt, metric.WithAttributes(attribute.String("fault.kind", kind)))
	}

	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordCache records a cache lookup outcome.
func (m *metricsImpl) RecordCache(ctx context.Context, meta OpMeta, hit bool) {
	if hit {
		m.cacheHits.Add(ctx, 1, m.attrs(meta))
		return
	}
	m.cacheMisses.Add(ctx, 1, m.attrs(meta))
}

// RecordRemote records one remote API call.
func (m *metricsImpl) RecordRemote(ctx context.Context, meta OpMeta) {
	m.remoteCalls.Add(ctx, 1, m.attrs(meta))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordInvocation(ctx context.Context, meta OpMeta, duration time.Duration, err error) {
}
func (m *noopMetrics) RecordCache(ctx context.Context, meta OpMeta, hit bool) {}
func (m *noopMetrics) RecordRemote(ctx context.Context, meta OpMeta)          {}

// NoopMetrics returns a Metrics implementation that discards everything.
func NoopMetrics() Metrics { return &noopMetrics{} }
