package api

import (
	"net/http"

	"github.com/platinummonkey/httplint/pkg/diag"
	"github.com/platinummonkey/httplint/pkg/httputil"
)

// listRules handles GET /api/v1/rules
func (s *Server) listRules(w http.ResponseWriter, r *http.Request) {
	severity := httputil.ParseQueryString(r, "severity", "")

	kinds := diag.Kinds()
	rules := make([]diag.KindInfo, 0, len(kinds))
	for _, info := range kinds {
		if severity != "" && string(info.DefaultSeverity) != severity {
			continue
		}
		rules = append(rules, info)
	}

	httputil.WriteSuccess(w, RulesResponse{Rules: rules, Count: len(rules)})
}

// getRule handles GET /api/v1/rules/{kind}
func (s *Server) getRule(w http.ResponseWriter, r *http.Request) {
	vars := httputil.GetPathVars(r)
	kind := diag.Kind(vars["kind"])

	for _, info := range diag.Kinds() {
		if info.Kind == kind {
			httputil.WriteSuccess(w, info)
			return
		}
	}

	httputil.WriteNotFoundError(w, "unknown rule: "+string(kind))
}
