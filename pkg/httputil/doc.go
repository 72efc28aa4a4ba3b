// Package httputil provides HTTP utilities for standardized request/response handling.
//
// # Overview
//
// This package offers helper functions for JSON encoding/decoding, error responses,
// parameter parsing, and common HTTP middleware patterns.
//
// # Response Helpers
//
// JSON responses:
//
//	httputil.WriteJSON(w, http.StatusOK, data)
//	httputil.WriteSuccess(w, result)
//
// Error responses:
//
//	httputil.WriteError(w, http.StatusBadRequest, err)
//	httputil.WriteBadRequest(w, "Invalid input")
//	httputil.WriteNotFoundError(w, "unknown rule")
//
// # Request Parsing
//
// JSON parsing:
//
//	var req lintRequest
//	if !httputil.ParseJSONOrError(w, r, &req) {
//		return // Error response already written
//	}
//
// Path and query parameters:
//
//	vars := httputil.GetPathVars(r)
//	severity := httputil.ParseQueryString(r, "severity", "")
//	nocache, err := httputil.ParseQueryBool(r, "nocache", false)
//
// # Middleware
//
// Compose middleware around a handler, outermost first:
//
//	handler := httputil.Chain(
//		httputil.RequestIDMiddleware,
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//	)(router)
//
// RequestIDMiddleware assigns a UUID per request and stores it in the
// request context; LoggingMiddleware emits one structured line per request
// including that ID.
//
// # Related Packages
//
//   - pkg/api: HTTP handlers built on these helpers
//   - pkg/observability: structured logger carried through request contexts
package httputil
