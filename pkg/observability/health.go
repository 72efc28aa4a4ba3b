package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

// ProbeFunc checks one dependency and returns an error when it is down
type ProbeFunc func(ctx context.Context) error

type probeEntry struct {
	check    ProbeFunc
	optional bool
}

// HealthChecker aggregates named dependency probes behind liveness and
// readiness endpoints
type HealthChecker struct {
	version string
	probes  map[string]probeEntry
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(version string) *HealthChecker {
	return &HealthChecker{
		version: version,
		probes:  make(map[string]probeEntry),
	}
}

// RegisterProbe adds a dependency probe. A failing probe marks the
// service unhealthy.
func (h *HealthChecker) RegisterProbe(name string, probe ProbeFunc) {
	h.probes[name] = probeEntry{check: probe}
}

// RegisterOptionalProbe adds a dependency probe whose failure degrades
// the service instead of marking it unhealthy.
func (h *HealthChecker) RegisterOptionalProbe(name string, probe ProbeFunc) {
	h.probes[name] = probeEntry{check: probe, optional: true}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status       string                      `json:"status"`
	Timestamp    time.Time                   `json:"timestamp"`
	Version      string                      `json:"version,omitempty"`
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}

// DependencyStatus represents the health of a single dependency
type DependencyStatus struct {
	Status    string        `json:"status"`
	Message   string        `json:"message,omitempty"`
	Latency   time.Duration `json:"latency_ms,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// Liveness returns a simple liveness probe (always returns 200 if server is running)
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    StatusHealthy,
		"timestamp": time.Now(),
	})
}

// Readiness returns a readiness probe (checks all dependencies)
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := h.Check(ctx)

	w.Header().Set("Content-Type", "application/json")

	// Return 503 if unhealthy, 200 if healthy or degraded
	if status.Status == StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(status)
}

// Check runs every registered probe and aggregates the results
func (h *HealthChecker) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:       StatusHealthy,
		Timestamp:    time.Now(),
		Version:      h.version,
		Dependencies: make(map[string]DependencyStatus),
	}

	// Probes run in name order so the response is stable
	names := make([]string, 0, len(h.probes))
	for name := range h.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		entry := h.probes[name]
		depStatus := h.runProbe(ctx, entry.check)
		status.Dependencies[name] = depStatus

		if depStatus.Status != StatusUnhealthy {
			continue
		}
		if entry.optional {
			if status.Status != StatusUnhealthy {
				status.Status = StatusDegraded
			}
		} else {
			status.Status = StatusUnhealthy
		}
	}

	return status
}

// runProbe executes a single probe with timing
func (h *HealthChecker) runProbe(ctx context.Context, probe ProbeFunc) DependencyStatus {
	start := time.Now()
	status := DependencyStatus{
		Status:    StatusHealthy,
		Timestamp: start,
	}

	if err := probe(ctx); err != nil {
		status.Status = StatusUnhealthy
		status.Message = err.Error()
	}

	status.Latency = time.Since(start) / time.Millisecond
	return status
}
