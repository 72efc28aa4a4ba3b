package api

import (
	"github.com/platinummonkey/httplint/pkg/diag"
	"github.com/platinummonkey/httplint/pkg/lint"
)

// LintRequest is the payload for POST /api/v1/lint
type LintRequest struct {
	// Files maps proto file names to their contents. Imports between the
	// files resolve within this set; google/api annotations resolve from
	// the server's built-in descriptors.
	Files map[string]string `json:"files"`

	// Config optionally overrides the server's lint configuration for
	// this request. Requests with a custom config bypass the result
	// cache.
	Config *lint.Config `json:"config,omitempty"`
}

// LintResponse carries per-file results plus an aggregate summary
type LintResponse struct {
	Results []lint.Result `json:"results"`
	Summary diag.Summary  `json:"summary"`
	Cached  bool          `json:"cached"`
}

// RulesResponse lists the available checks
type RulesResponse struct {
	Rules []diag.KindInfo `json:"rules"`
	Count int             `json:"count"`
}
