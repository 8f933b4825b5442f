package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Health check values reported in HealthResponse.Checks.
const (
	checkOK       = "ok"
	checkNotReady = "not ready"
	checkStopping = "shutting down"
	hubConnected  = "connected"
	hubIdle       = "idle"
)

// HealthChecker serves /healthz and /readyz for the HTTP transports.
type HealthChecker struct {
	ready     atomic.Bool
	sc        *ServerContext
	startedAt time.Time
}

// NewHealthChecker returns a checker that starts out ready.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	h := &HealthChecker{sc: sc, startedAt: time.Now()}
	h.ready.Store(true)
	return h
}

// SetReady flips readiness, e.g. to drain traffic before shutdown.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports the readiness flag.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

// HealthResponse is the JSON body of both endpoints.
type HealthResponse struct {
	Status  string            `json:"status"`
	Checks  map[string]string `json:"checks,omitempty"`
	Version string            `json:"version,omitempty"`
	Uptime  string            `json:"uptime,omitempty"`
}

// LivenessHandler answers 200 whenever the process can serve HTTP.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response := HealthResponse{
			Status: checkOK,
			Uptime: time.Since(h.startedAt).Truncate(time.Second).String(),
		}
		if h.sc != nil && h.sc.Config() != nil {
			response.Version = h.sc.Config().Version
		}
		writeHealth(w, http.StatusOK, response)
	})
}

// ReadinessHandler answers 503 after SetReady(false) or once the server
// context is shut down.
//
// The hub session is opened lazily by the first tool call, so a hub that is
// not connected yet is reported as idle and does not fail readiness.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		checks, ok := h.readinessChecks()

		code, status := http.StatusOK, checkOK
		if !ok {
			code, status = http.StatusServiceUnavailable, checkNotReady
		}
		writeHealth(w, code, HealthResponse{Status: status, Checks: checks})
	})
}

// readinessChecks collects the individual checks and whether all gating ones pass.
func (h *HealthChecker) readinessChecks() (map[string]string, bool) {
	checks := map[string]string{"ready": checkOK, "shutdown": checkOK}
	ok := true

	if !h.ready.Load() {
		checks["ready"] = checkNotReady
		ok = false
	}
	if h.sc == nil {
		return checks, ok
	}
	if h.sc.IsShutdown() {
		checks["shutdown"] = checkStopping
		ok = false
	}

	// Informational only.
	if client := h.sc.HubClient(); client != nil {
		checks["hub"] = hubIdle
		if client.Connected() {
			checks["hub"] = hubConnected
		}
	}
	if provider := h.sc.InstrumentationProvider(); provider != nil {
		checks["instrumentation"] = "disabled"
		if provider.Enabled() {
			checks["instrumentation"] = checkOK
		}
	}
	return checks, ok
}

func writeHealth(w http.ResponseWriter, code int, response HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(response)
}

// RegisterHealthEndpoints mounts /healthz and /readyz on mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle("/healthz", h.LivenessHandler())
	mux.Handle("/readyz", h.ReadinessHandler())
}
