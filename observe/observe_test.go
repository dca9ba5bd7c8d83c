package observe

import (
	"context"
	"errors"
	"testing"
)

// TestConfigValidate_Valid verifies that a fully valid config passes validation.
func TestConfigValidate_Valid(t *testing.T) {
	cfg := Config{
		ServiceName: "kaggle-mcp",
		Version:     "1.0.0",
		Tracing: TracingConfig{
			Enabled:   true,
			Exporter:  "stdout",
			SamplePct: 1.0,
		},
		Metrics: MetricsConfig{
			Enabled:  true,
			Exporter: "stdout",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

// TestConfigValidate_MissingServiceName verifies that empty ServiceName fails validation.
func TestConfigValidate_MissingServiceName(t *testing.T) {
	cfg := Config{
		ServiceName: "",
		Version:     "1.0.0",
	}

	err := cfg.Validate()
	if !errors.Is(err, ErrMissingServiceName) {
		t.Errorf("expected ErrMissingServiceName, got: %v", err)
	}
}

// TestConfigValidate_UnknownExporters verifies exporter name validation.
func TestConfigValidate_UnknownExporters(t *testing.T) {
	cfg := Config{
		ServiceName: "kaggle-mcp",
		Tracing: TracingConfig{
			Enabled:  true,
			Exporter: "carrier-pigeon",
		},
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidTracingExporter) {
		t.Errorf("expected ErrInvalidTracingExporter, got: %v", err)
	}

	cfg = Config{
		ServiceName: "kaggle-mcp",
		Metrics: MetricsConfig{
			Enabled:  true,
			Exporter: "badvalue",
		},
	}
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidMetricsExporter) {
		t.Errorf("expected ErrInvalidMetricsExporter, got: %v", err)
	}
}

// TestConfigValidate_SamplePctBounds verifies SamplePct range validation.
func TestConfigValidate_SamplePctBounds(t *testing.T) {
	for _, pct := range []float64{-0.1, 1.1} {
		cfg := Config{
			ServiceName: "kaggle-mcp",
			Tracing: TracingConfig{
				Enabled:   true,
				Exporter:  "stdout",
				SamplePct: pct,
			},
		}
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidSamplePct) {
			t.Errorf("SamplePct=%f: expected ErrInvalidSamplePct, got: %v", pct, err)
		}
	}
}

// TestNewObserver_Disabled verifies that a disabled observer yields noop providers.
func TestNewObserver_Disabled(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{ServiceName: "kaggle-mcp"})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}
	defer obs.Shutdown(context.Background())

	if obs.Tracer() == nil {
		t.Error("Tracer should not be nil when tracing is disabled")
	}
	if obs.Meter() == nil {
		t.Error("Meter should not be nil when metrics are disabled")
	}
	if obs.Logger() == nil {
		t.Error("Logger should not be nil when logging is disabled")
	}

	// Noop logger must accept calls without panicking.
	obs.Logger().Info(context.Background(), "ignored")
}

// TestObserver_ShutdownIdempotent verifies that Shutdown can be called twice.
func TestObserver_ShutdownIdempotent(t *testing.T) {
	obs, err := NewObserver(context.Background(), Config{
		ServiceName: "kaggle-mcp",
		Logging:     LoggingConfig{Enabled: true, Level: "error"},
	})
	if err != nil {
		t.Fatalf("NewObserver failed: %v", err)
	}

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("first Shutdown failed: %v", err)
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown failed: %v", err)
	}
}
