package http

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Pinger is satisfied by the store.
type Pinger interface {
	Ping(ctx context.Context) error
	Kind() string
}

type HealthHandler struct {
	db          Pinger
	environment string
	version     string
	startedAt   time.Time
	logger      *zap.Logger
}

func NewHealthHandler(db Pinger, environment, version string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		environment: environment,
		version:     version,
		startedAt:   time.Now(),
		logger:      logger,
	}
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

type readyResponse struct {
	Ready bool `json:"ready"`
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, readyResponse{Ready: false})
		return
	}
	writeJSON(w, http.StatusOK, readyResponse{Ready: true})
}

type healthResponse struct {
	Status      string `json:"status"`
	Uptime      string `json:"uptime"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
	Version     string `json:"version"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "ok",
		Uptime:      time.Since(h.startedAt).Round(time.Second).String(),
		Environment: h.environment,
		Database:    h.db.Kind(),
		Version:     h.version,
	})
}
