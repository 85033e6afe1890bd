package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const pingTimeout = 3 * time.Second

// pinger defines the minimal interface for dependency health checks.
type pinger interface {
	Ping(ctx context.Context) error
}

type optionalDep struct {
	name string
	dep  pinger
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db       pinger
	optional []optionalDep
	version  string
}

// NewHealthHandler creates a HealthHandler. The database is required for
// readiness.
func NewHealthHandler(db pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// WithOptional registers a dependency whose outage degrades the service
// without making it unready (e.g. the event stream).
func (h *HealthHandler) WithOptional(name string, dep pinger) *HealthHandler {
	h.optional = append(h.optional, optionalDep{name: name, dep: dep})
	return h
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. Pings DB: 200 if OK, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if comp := check(r.Context(), h.db); comp.Status != "ok" {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check with per-component latency and version.
// Components are probed concurrently. A failing database reports "down" with
// 503; a failing optional component reports "degraded" with 200.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	deps := append([]optionalDep{{name: "database", dep: h.db}}, h.optional...)
	results := make([]CompStatus, len(deps))

	var g errgroup.Group
	for i, d := range deps {
		g.Go(func() error {
			results[i] = check(r.Context(), d.dep)
			return nil
		})
	}
	_ = g.Wait()

	components := make(map[string]CompStatus, len(deps))
	overallStatus := "ok"
	for i, d := range deps {
		components[d.name] = results[i]
		if results[i].Status == "ok" {
			continue
		}
		if i == 0 {
			overallStatus = "down"
		} else if overallStatus == "ok" {
			overallStatus = "degraded"
		}
	}

	status := http.StatusOK
	if overallStatus == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func check(ctx context.Context, dep pinger) CompStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	if err := dep.Ping(ctx); err != nil {
		return CompStatus{Status: "down"}
	}
	return CompStatus{Status: "ok", Latency: time.Since(start).String()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
