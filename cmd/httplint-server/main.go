package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/platinummonkey/httplint/pkg/api"
	"github.com/platinummonkey/httplint/pkg/cli"
	"github.com/platinummonkey/httplint/pkg/config"
	"github.com/platinummonkey/httplint/pkg/httputil"
	"github.com/platinummonkey/httplint/pkg/lint"
	"github.com/platinummonkey/httplint/pkg/observability"
	"github.com/platinummonkey/httplint/pkg/swagger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		observability.NewLogger(observability.ErrorLevel, nil).
			WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, nil)
	defer observability.RecoverPanic(logger, "main")

	logger.WithFields(map[string]interface{}{
		"addr":    cfg.Server.Addr(),
		"version": cli.Version,
	}).Info("Starting httplint server")

	ctx := context.Background()

	// OpenTelemetry providers, when enabled
	otelProviders, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
	}, logger)
	if err != nil {
		logger.WithError(err).Error("Failed to initialize OpenTelemetry")
		os.Exit(1)
	}

	// Prometheus metrics, when enabled
	var (
		registry *prometheus.Registry
		metrics  *observability.Metrics
	)
	if cfg.Observability.MetricsEnabled {
		registry = prometheus.NewRegistry()
		metrics = observability.NewMetrics(registry)
	}

	var otelMetrics *observability.OTelMetrics
	if cfg.Observability.OTelEnabled {
		otelMetrics, err = observability.NewOTelMetrics()
		if err != nil {
			logger.WithError(err).Error("Failed to create OTel metrics")
			os.Exit(1)
		}
	}

	// Lint engine and result cache
	engine := lint.NewEngine(&lint.Config{
		Lint: lint.LintRules{MaxConcurrency: cfg.Lint.MaxConcurrency},
	})
	cache := lint.NewResultCache(cfg.Lint.CacheSize, cfg.Lint.CacheTTL)

	health := observability.NewHealthChecker(cli.Version)
	health.RegisterProbe("compiler", engine.SelfCheck)

	var rateLimiter *httputil.RateLimiter
	if cfg.Server.RateLimitEnabled {
		rateLimiter = httputil.NewRateLimiter(&httputil.RateLimitConfig{
			RequestsPerWindow: cfg.Server.RateLimitPerMinute,
			WindowDuration:    time.Minute,
			BurstSize:         cfg.Server.RateLimitBurst,
		})
		rateLimiter.StartCleanup(ctx)
	}

	server := api.NewServer(api.Options{
		Engine:          engine,
		Cache:           cache,
		Logger:          logger,
		Metrics:         metrics,
		Registry:        registry,
		OTelMetrics:     otelMetrics,
		Health:          health,
		TracingEnabled:  cfg.Observability.OTelEnabled,
		MaxRequestBytes: cfg.Server.MaxRequestBytes,
		RateLimiter:     rateLimiter,
	})
	server.RegisterRoutes(swagger.NewHandlers())

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdownManager := observability.NewShutdownManager(logger, httpServer, cfg.Server.ShutdownTimeout)
	shutdownManager.RegisterShutdownFunc(func(ctx context.Context) error {
		return observability.ShutdownOTel(ctx, otelProviders, logger)
	})

	go func() {
		logger.Infof("Listening on %s", cfg.Server.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("HTTP server failed")
			os.Exit(1)
		}
	}()

	if err := shutdownManager.WaitForShutdown(); err != nil {
		logger.WithError(err).Error("Shutdown finished with errors")
		os.Exit(1)
	}
}
