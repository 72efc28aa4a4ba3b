package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/httplint/pkg/diag"
)

// TestListRules tests the rule catalog endpoint
func TestListRules(t *testing.T) {
	server := newTestServer(Options{})

	req := httptest.NewRequest("GET", "/api/v1/rules", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response RulesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, len(diag.Kinds()), response.Count)

	kinds := make(map[diag.Kind]bool)
	for _, rule := range response.Rules {
		kinds[rule.Kind] = true
		assert.NotEmpty(t, rule.Description)
	}
	assert.True(t, kinds[diag.KindMapParam])
	assert.True(t, kinds[diag.KindCompileError])
}

// TestListRules_SeverityFilter tests filtering rules by default severity
func TestListRules_SeverityFilter(t *testing.T) {
	server := newTestServer(Options{})

	req := httptest.NewRequest("GET", "/api/v1/rules?severity=error", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response RulesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, len(diag.Kinds()), response.Count)
	for _, rule := range response.Rules {
		assert.Equal(t, diag.SeverityError, rule.DefaultSeverity)
	}

	req = httptest.NewRequest("GET", "/api/v1/rules?severity=warning", nil)
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 0, response.Count)
}

// TestGetRule tests fetching a single rule by kind
func TestGetRule(t *testing.T) {
	server := newTestServer(Options{})

	req := httptest.NewRequest("GET", "/api/v1/rules/MAP_PARAM", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var info diag.KindInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, diag.KindMapParam, info.Kind)
	assert.Equal(t, diag.SeverityError, info.DefaultSeverity)
	assert.Contains(t, info.Description, "map fields")
}

// TestGetRule_Unknown tests the 404 path for unknown rule names
func TestGetRule_Unknown(t *testing.T) {
	server := newTestServer(Options{})

	req := httptest.NewRequest("GET", "/api/v1/rules/NOT_A_RULE", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "unknown rule")
}
