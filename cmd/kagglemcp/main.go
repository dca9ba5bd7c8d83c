package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jonwraymond/kagglemcp/cache"
	"github.com/jonwraymond/kagglemcp/config"
	"github.com/jonwraymond/kagglemcp/fault"
	"github.com/jonwraymond/kagglemcp/health"
	"github.com/jonwraymond/kagglemcp/invoke"
	"github.com/jonwraymond/kagglemcp/kaggle"
	"github.com/jonwraymond/kagglemcp/observe"
	"github.com/jonwraymond/kagglemcp/resilience"
	"github.com/jonwraymond/kagglemcp/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "kagglemcp:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	// Local .env files are a convenience for development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	ctx := context.Background()

	observer, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: cfg.Observe.ServiceName,
		Version:     cfg.Server.Version,
		Tracing: observe.TracingConfig{
			Enabled:   cfg.Observe.Enabled,
			Exporter:  cfg.Observe.TracingExporter,
			SamplePct: 1.0,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  cfg.Observe.Enabled,
			Exporter: cfg.Observe.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   cfg.Observe.LogLevel,
		},
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := observer.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintln(os.Stderr, "kagglemcp: telemetry shutdown:", err)
		}
	}()
	logger := observer.Logger()

	creds := kaggle.Credentials{Username: cfg.Kaggle.Username, Key: cfg.Kaggle.Key}
	if creds.Empty() {
		if loaded, err := kaggle.LoadCredentials(); err == nil {
			creds = loaded
		}
	}

	client := kaggle.NewClient(creds, kaggle.WithBaseURL(cfg.Kaggle.BaseURL))

	metrics, err := observe.NewMetrics(observer.Meter())
	if err != nil {
		return fmt.Errorf("initializing metrics: %w", err)
	}

	var store cache.Cache
	policy := cache.NoCachePolicy()
	if cfg.Cache.Enabled {
		store = cache.NewMemoryCache()
		policy = cache.Policy{
			CompetitionsTTL: cfg.Cache.CompetitionsTTL,
			DatasetsTTL:     cfg.Cache.DatasetsTTL,
			ModelsTTL:       cfg.Cache.ModelsTTL,
			MaxTTL:          cfg.Cache.MaxTTL,
		}
	}

	invoker := invoke.New(
		store,
		cache.NewDefaultKeyer(),
		policy,
		fault.NewClassifier(logger),
		invoke.Config{
			RemoteTimeout: cfg.Retry.RemoteTimeout,
			Retry: resilience.RetryConfig{
				MaxAttempts:  cfg.Retry.MaxAttempts,
				InitialDelay: cfg.Retry.InitialDelay,
				MaxDelay:     cfg.Retry.MaxDelay,
				Jitter:       true,
			},
		},
		observe.NewTracer(observer.Tracer()),
		metrics,
		logger,
	)

	runStartupChecks(ctx, logger, creds, cfg.Download.Root, client)

	handlers := server.NewHandlers(client, invoker, logger, cfg)
	s := server.New(cfg, handlers)

	logger.Info(ctx, "server starting",
		observe.Field{Key: "name", Value: cfg.Server.Name},
		observe.Field{Key: "version", Value: cfg.Server.Version},
	)
	return server.Serve(s)
}

// runStartupChecks logs the state of each dependency. Degraded or
// unhealthy checks do not abort startup: listing tools still work
// without a writable download directory, and credentials may be fixed
// while the server is running.
func runStartupChecks(ctx context.Context, logger observe.Logger, creds kaggle.Credentials, downloadRoot string, client *kaggle.Client) {
	checkCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	checks := []health.Checker{
		health.NewCredentialsCheck(creds),
		health.NewDownloadRootCheck(downloadRoot),
		health.NewRemoteAPICheck(client),
	}

	for _, check := range checks {
		result := check.Check(checkCtx)
		fields := []observe.Field{
			{Key: "check", Value: check.Name()},
			{Key: "status", Value: result.Status.String()},
			{Key: "message", Value: result.Message},
		}
		if result.Error != nil {
			fields = append(fields, observe.Field{Key: "error", Value: result.Error.Error()})
		}

		switch result.Status {
		case health.StatusHealthy:
			logger.Info(checkCtx, "startup check passed", fields...)
		case health.StatusDegraded:
			logger.Warn(checkCtx, "startup check degraded", fields...)
		default:
			logger.Error(checkCtx, "startup check failed", fields...)
		}
	}
}
