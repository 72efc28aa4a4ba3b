// Package api provides the HTTP REST API server for the httplint binding linter.
//
// # Overview
//
// This package exposes the lint engine over HTTP so editors, CI systems, and
// web frontends can validate google.api.http bindings without a local proto
// toolchain. Requests carry proto sources in memory; nothing is written to
// disk and identical source sets share cached results.
//
// # Architecture
//
// The API is built on gorilla/mux and organized into handler groups:
//
//   - Lint: validate a set of in-memory proto files
//   - Rules: enumerate and describe the available checks
//   - Cache: inspect result cache statistics
//   - Probes: liveness and readiness endpoints for orchestrators
//   - Metrics: Prometheus scrape endpoint
//
// # Key Types
//
// Server is the main API server. Construct it with Options and serve it like
// any http.Handler:
//
//	server := api.NewServer(api.Options{
//		Engine: lint.NewEngine(nil),
//		Logger: logger,
//	})
//	http.ListenAndServe(":8080", server)
//
// LintRequest carries the sources to validate:
//
//	req := api.LintRequest{
//		Files: map[string]string{
//			"user.proto": "syntax = \"proto3\";...",
//		},
//	}
//
// # API Endpoints
//
//	POST   /api/v1/lint           - Lint a set of proto files
//	GET    /api/v1/rules          - List available checks
//	GET    /api/v1/rules/{kind}   - Describe one check
//	GET    /api/v1/cache/stats    - Result cache statistics
//	GET    /health                - Liveness probe
//	GET    /ready                 - Readiness probe
//	GET    /metrics               - Prometheus metrics
//
// The lint endpoint accepts an optional per-request lint config mirroring
// httplint.yaml, and a nocache query parameter to force a fresh run.
//
// Additional route bundles implementing RouteRegistrar (for example the
// OpenAPI endpoints in pkg/swagger) can be attached with
// Server.RegisterRoutes; they share the server's middleware stack.
//
// # Middleware
//
// Every request passes through request ID assignment, structured logging,
// and panic recovery. A per-IP rate limiter and a request body size cap
// are applied when configured. When metrics are configured the stack also
// records per-route Prometheus counters, and with tracing enabled the
// whole stack is wrapped in otelhttp spans.
//
// # Related Packages
//
//   - pkg/lint: the engine and result cache behind the handlers
//   - pkg/diag: diagnostic kinds and summaries returned in responses
//   - pkg/httputil: request parsing and response helpers
//   - pkg/observability: logging, metrics, and health checking
package api
