package api

import (
	"context"
	"net/http"
	"time"

	"github.com/platinummonkey/httplint/pkg/httputil"
	"github.com/platinummonkey/httplint/pkg/lint"
)

// lintSources handles POST /api/v1/lint
func (s *Server) lintSources(w http.ResponseWriter, r *http.Request) {
	var req LintRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	if len(req.Files) == 0 {
		httputil.WriteValidationError(w, "files is required")
		return
	}
	for name := range req.Files {
		if name == "" {
			httputil.WriteValidationError(w, "file names must not be empty")
			return
		}
	}

	nocache, err := httputil.ParseQueryBool(r, "nocache", false)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}

	engine := s.engine
	if req.Config != nil {
		if err := req.Config.Validate(); err != nil {
			httputil.WriteBadRequest(w, "invalid config: "+err.Error())
			return
		}
		engine = lint.NewEngine(req.Config)
	}

	// The cache key covers only source contents, so runs with a custom
	// config never share entries with default-config runs.
	cacheable := req.Config == nil && !nocache
	var key string
	if cacheable {
		key = lint.CacheKey(req.Files)
		if run, ok := s.cache.Get(key); ok {
			s.recordCacheHit(r.Context())
			httputil.WriteSuccess(w, LintResponse{
				Results: run.Results,
				Summary: run.Summary,
				Cached:  true,
			})
			return
		}
		s.recordCacheMiss(r.Context())
	}

	start := time.Now()
	results, summary, err := engine.LintSources(r.Context(), req.Files)
	duration := time.Since(start)
	if err != nil {
		s.recordLintRun(r.Context(), "error", len(req.Files), duration, nil)
		s.logger.WithError(err).Error("lint run failed")
		httputil.WriteInternalError(w, err)
		return
	}
	s.recordLintRun(r.Context(), "ok", len(req.Files), duration, results)

	if cacheable {
		s.cache.Put(key, &lint.CachedRun{Results: results, Summary: summary})
	}

	httputil.WriteSuccess(w, LintResponse{Results: results, Summary: summary})
}

// cacheStats handles GET /api/v1/cache/stats
func (s *Server) cacheStats(w http.ResponseWriter, r *http.Request) {
	httputil.WriteSuccess(w, s.cache.Stats())
}

func (s *Server) recordCacheHit(ctx context.Context) {
	if s.metrics != nil {
		s.metrics.CacheHitsTotal.Inc()
	}
	if s.otelMetrics != nil {
		s.otelMetrics.RecordCacheHit(ctx)
	}
}

func (s *Server) recordCacheMiss(ctx context.Context) {
	if s.metrics != nil {
		s.metrics.CacheMissesTotal.Inc()
	}
	if s.otelMetrics != nil {
		s.otelMetrics.RecordCacheMiss(ctx)
	}
}

// recordLintRun updates the lint counters after a run completes
func (s *Server) recordLintRun(ctx context.Context, status string, files int, duration time.Duration, results []lint.Result) {
	if s.metrics != nil {
		s.metrics.LintRequestsTotal.WithLabelValues(status).Inc()
		s.metrics.LintDuration.Observe(duration.Seconds())
		s.metrics.FilesLintedTotal.Add(float64(files))
		for _, result := range results {
			for _, d := range result.Diagnostics {
				s.metrics.DiagnosticsTotal.WithLabelValues(string(d.Kind), string(d.Severity)).Inc()
			}
		}
		s.metrics.CacheEntries.Set(float64(s.cache.Stats().ItemCount))
	}
	if s.otelMetrics != nil {
		s.otelMetrics.RecordLintRun(ctx, status, files, duration)
		for _, result := range results {
			for _, d := range result.Diagnostics {
				s.otelMetrics.RecordDiagnostic(ctx, string(d.Kind), string(d.Severity))
			}
		}
	}
}
