package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/platinummonkey/httplint/pkg/httputil"
	"github.com/platinummonkey/httplint/pkg/lint"
	"github.com/platinummonkey/httplint/pkg/observability"
)

// Options configures an API server. Nil Engine, Cache, and Logger fall
// back to defaults; nil observability fields disable the matching
// instrumentation.
type Options struct {
	Engine *lint.Engine
	Cache  *lint.ResultCache
	Logger *observability.Logger

	// Metrics and Registry enable Prometheus instrumentation and the
	// /metrics scrape endpoint.
	Metrics  *observability.Metrics
	Registry *prometheus.Registry

	// OTelMetrics mirrors the lint counters to OpenTelemetry.
	OTelMetrics *observability.OTelMetrics

	// Health enables the /health and /ready probe endpoints.
	Health *observability.HealthChecker

	// TracingEnabled wraps the handler stack with otelhttp spans.
	TracingEnabled bool

	// MaxRequestBytes caps request body sizes when positive.
	MaxRequestBytes int64

	// RateLimiter throttles clients by IP when set.
	RateLimiter *httputil.RateLimiter
}

// Server serves the lint API over HTTP
type Server struct {
	engine      *lint.Engine
	cache       *lint.ResultCache
	logger      *observability.Logger
	metrics     *observability.Metrics
	otelMetrics *observability.OTelMetrics
	health      *observability.HealthChecker
	registry    *prometheus.Registry
	router      *mux.Router
	handler     http.Handler
}

// NewServer creates a new API server
func NewServer(opts Options) *Server {
	if opts.Engine == nil {
		opts.Engine = lint.NewEngine(nil)
	}
	if opts.Cache == nil {
		opts.Cache = lint.NewResultCache(256, 5*time.Minute)
	}
	if opts.Logger == nil {
		opts.Logger = observability.NewLogger(observability.InfoLevel, nil)
	}

	s := &Server{
		engine:      opts.Engine,
		cache:       opts.Cache,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		otelMetrics: opts.OTelMetrics,
		health:      opts.Health,
		registry:    opts.Registry,
		router:      mux.NewRouter(),
	}

	s.setupRoutes()
	s.handler = s.buildHandler(opts)
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	// Lint routes
	s.router.HandleFunc("/api/v1/lint", s.lintSources).Methods("POST")
	s.router.HandleFunc("/api/v1/cache/stats", s.cacheStats).Methods("GET")

	// Rule catalog routes
	s.router.HandleFunc("/api/v1/rules", s.listRules).Methods("GET")
	s.router.HandleFunc("/api/v1/rules/{kind}", s.getRule).Methods("GET")

	// Probe routes
	if s.health != nil {
		s.router.HandleFunc("/health", s.health.Liveness).Methods("GET")
		s.router.HandleFunc("/ready", s.health.Readiness).Methods("GET")
	}

	// Prometheus scrape endpoint
	if s.registry != nil {
		s.router.Handle("/metrics", observability.MetricsHandler(s.registry)).Methods("GET")
	}
}

// buildHandler wraps the router in the middleware stack. Request IDs
// are assigned outermost so every later stage sees them.
func (s *Server) buildHandler(opts Options) http.Handler {
	middlewares := []func(http.Handler) http.Handler{
		httputil.RequestIDMiddleware,
		httputil.LoggingMiddleware(s.logger),
		httputil.RecoveryMiddleware(s.logger),
	}
	if opts.RateLimiter != nil {
		middlewares = append(middlewares, httputil.RateLimitMiddleware(opts.RateLimiter))
	}
	if opts.MaxRequestBytes > 0 {
		middlewares = append(middlewares, httputil.MaxBytesMiddleware(opts.MaxRequestBytes))
	}
	if s.metrics != nil {
		middlewares = append(middlewares, observability.HTTPMetricsMiddleware(s.metrics))
	}

	handler := httputil.Chain(middlewares...)(s.router)
	if opts.TracingEnabled {
		handler = otelhttp.NewHandler(handler, "httplint-server")
	}
	return handler
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// RouteRegistrar is an interface for types that can register routes
type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

// RegisterRoutes registers routes from a RouteRegistrar
func (s *Server) RegisterRoutes(registrar RouteRegistrar) {
	registrar.RegisterRoutes(s.router)
}
