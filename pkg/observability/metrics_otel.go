package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics holds OpenTelemetry metric instruments
type OTelMetrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// Lint metrics
	lintRunsTotal    metric.Int64Counter
	lintDuration     metric.Float64Histogram
	filesLintedTotal metric.Int64Counter
	diagnosticsTotal metric.Int64Counter

	// Result cache metrics
	cacheHitsTotal   metric.Int64Counter
	cacheMissesTotal metric.Int64Counter
}

// NewOTelMetrics creates a new OTel metrics instance
func NewOTelMetrics() (*OTelMetrics, error) {
	meter := otel.Meter("github.com/platinummonkey/httplint")

	m := &OTelMetrics{}
	var err error

	// HTTP metrics
	m.httpRequestsTotal, err = meter.Int64Counter(
		"http.server.requests",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http.server.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration histogram: %w", err)
	}

	// Lint metrics
	m.lintRunsTotal, err = meter.Int64Counter(
		"lint.runs.total",
		metric.WithDescription("Total number of lint runs by outcome"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create lint_runs_total counter: %w", err)
	}

	m.lintDuration, err = meter.Float64Histogram(
		"lint.run.duration",
		metric.WithDescription("Lint run duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create lint_duration histogram: %w", err)
	}

	m.filesLintedTotal, err = meter.Int64Counter(
		"lint.files.total",
		metric.WithDescription("Total number of proto files linted"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create files_linted_total counter: %w", err)
	}

	m.diagnosticsTotal, err = meter.Int64Counter(
		"lint.diagnostics.total",
		metric.WithDescription("Total number of diagnostics emitted"),
		metric.WithUnit("{diagnostic}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create diagnostics_total counter: %w", err)
	}

	// Cache metrics
	m.cacheHitsTotal, err = meter.Int64Counter(
		"cache.hits.total",
		metric.WithDescription("Total number of result cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache_hits_total counter: %w", err)
	}

	m.cacheMissesTotal, err = meter.Int64Counter(
		"cache.misses.total",
		metric.WithDescription("Total number of result cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache_misses_total counter: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request metric
func (m *OTelMetrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", statusCode),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordLintRun records one lint run with its outcome and file count
func (m *OTelMetrics) RecordLintRun(ctx context.Context, status string, files int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("lint.status", status),
	}

	m.lintRunsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.lintDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	m.filesLintedTotal.Add(ctx, int64(files))
}

// RecordDiagnostic records one emitted diagnostic
func (m *OTelMetrics) RecordDiagnostic(ctx context.Context, kind, severity string) {
	attrs := []attribute.KeyValue{
		attribute.String("diagnostic.kind", kind),
		attribute.String("diagnostic.severity", severity),
	}
	m.diagnosticsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCacheHit records a result cache hit
func (m *OTelMetrics) RecordCacheHit(ctx context.Context) {
	m.cacheHitsTotal.Add(ctx, 1)
}

// RecordCacheMiss records a result cache miss
func (m *OTelMetrics) RecordCacheMiss(ctx context.Context) {
	m.cacheMissesTotal.Add(ctx, 1)
}
