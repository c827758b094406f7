package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const probeTimeout = 5 * time.Second

// Service states reported by /api/status.
const (
	stateHealthy       = "healthy"
	stateUnavailable   = "unavailable"
	stateConfigured    = "configured"
	stateNotConfigured = "not_configured"
)

type StatusResponse struct {
	Timestamp    string            `json:"timestamp"`
	Services     map[string]string `json:"services"`
	Overall      string            `json:"overall"`
	FallbackMode bool              `json:"fallbackMode"`
	Message      string            `json:"message"`
}

// Status probes the database (and Redis when configured) and reports whether
// the travel API has credentials. Anything not healthy answers 503.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	res := StatusResponse{
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Services: map[string]string{
			"app":      stateHealthy,
			"database": stateHealthy,
			"amadeus":  stateNotConfigured,
		},
	}
	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("database probe failed", zap.Error(err))
		res.Services["database"] = stateUnavailable
		res.FallbackMode = true
	}
	if h.travel.Configured() {
		res.Services["amadeus"] = stateConfigured
	}
	if h.cache != nil {
		res.Services["redis"] = stateHealthy
		if err := h.cache.Ping(ctx); err != nil {
			h.log.Warn("redis probe failed", zap.Error(err))
			res.Services["redis"] = stateUnavailable
		}
	}

	healthy := true
	for _, s := range res.Services {
		if s != stateHealthy && s != stateConfigured {
			healthy = false
		}
	}
	status := http.StatusOK
	res.Overall = stateHealthy
	if !healthy {
		status = http.StatusServiceUnavailable
		res.Overall = "degraded"
	}
	res.Message = "All services operational"
	if res.FallbackMode {
		res.Message = "Running in fallback mode due to external service issues"
	}
	writeJSON(w, status, res)
}

// DatabaseStatus checks the connection and makes sure indexes exist.
func (h *Handler) DatabaseStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*probeTimeout)
	defer cancel()
	ts := h.now().UTC().Format(time.RFC3339)

	if err := h.db.Ping(ctx); err != nil {
		h.log.Warn("database probe failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":   false,
			"error":     "Failed to connect to MongoDB",
			"timestamp": ts,
		})
		return
	}
	if err := h.db.EnsureIndexes(ctx); err != nil {
		h.log.Error("index initialization failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success":    false,
			"error":      "Failed to initialize database",
			"connection": true,
			"timestamp":  ts,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"message":        "MongoDB connection successful",
		"connection":     true,
		"initialization": true,
		"timestamp":      ts,
	})
}

// Health is the liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("OK"))
}
