package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// Pinger is a dependency whose reachability gates readiness
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	deps    map[string]Pinger
	timeout time.Duration
	logger  zerolog.Logger
}

// NewHealthHandler creates a health handler over the named dependencies
func NewHealthHandler(deps map[string]Pinger, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		deps:    deps,
		timeout: 2 * time.Second,
		logger:  logger.With().Str("component", "health_handler").Logger(),
	}
}

// RegisterRoutes registers /health and /ready
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /ready", h.handleReady)
}

// handleHealth returns 200 if the process is running
func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady returns 200 once every dependency answers a ping
func (h *HealthHandler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := h.deps[name].Ping(ctx); err != nil {
			h.logger.Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(name + " unavailable"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
