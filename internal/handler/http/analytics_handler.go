package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/cypherlabdev/odds-ingestion-service/internal/models"
	"github.com/cypherlabdev/odds-ingestion-service/internal/provider"
	"github.com/cypherlabdev/odds-ingestion-service/internal/service"
)

const (
	defaultHistoryHours = 24
	maxHistoryHours     = 24 * 14
)

// AnalyticsHandler serves read-only odds analytics over HTTP
type AnalyticsHandler struct {
	service *service.AnalyticsService
	now     func() time.Time
	logger  zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics HTTP handler
func NewAnalyticsHandler(service *service.AnalyticsService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		now:     time.Now,
		logger:  logger.With().Str("component", "analytics_handler").Logger(),
	}
}

// RegisterRoutes registers HTTP routes with the provided mux
func (h *AnalyticsHandler) RegisterRoutes(mux *http.ServeMux) {
	// GET /api/v1/games/{id}/odds?market= - Current quote per bookmaker
	mux.HandleFunc("GET /api/v1/games/{id}/odds", h.handleCurrentOdds)

	// GET /api/v1/games/{id}/odds/history?market=&bookmaker=&hours= - Stored time series
	mux.HandleFunc("GET /api/v1/games/{id}/odds/history", h.handleHistory)

	// GET /api/v1/games/{id}/best-line?market= - Best price per side
	mux.HandleFunc("GET /api/v1/games/{id}/best-line", h.handleBestLine)

	// GET /api/v1/games/{id}/consensus?market= - Vig-free consensus
	mux.HandleFunc("GET /api/v1/games/{id}/consensus", h.handleConsensus)

	// GET /api/v1/games/{id}/baseline?market=&bookmaker= - Market-derived baseline
	mux.HandleFunc("GET /api/v1/games/{id}/baseline", h.handleBaseline)
}

// handleCurrentOdds handles GET /api/v1/games/{id}/odds
func (h *AnalyticsHandler) handleCurrentOdds(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	market, ok := h.market(w, r, models.MarketMoneyline)
	if !ok {
		return
	}

	records, err := h.service.CurrentOdds(r.Context(), gameID, market)
	if err != nil {
		h.serviceError(w, err, gameID, "failed to retrieve odds")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"game_id": gameID,
		"market":  market,
		"count":   len(records),
		"odds":    records,
	})
}

// handleHistory handles GET /api/v1/games/{id}/odds/history
func (h *AnalyticsHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")

	query := models.SnapshotQuery{
		GameID:    gameID,
		Bookmaker: bookmakerParam(r),
	}

	if raw := r.URL.Query().Get("market"); raw != "" {
		market, err := models.ParseMarketType(raw)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		query.Market = market
	}

	hours := defaultHistoryHours
	if raw := r.URL.Query().Get("hours"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxHistoryHours {
			h.errorResponse(w, http.StatusBadRequest, "hours must be between 1 and "+strconv.Itoa(maxHistoryHours))
			return
		}
		hours = n
	}
	query.Since = h.now().Add(-time.Duration(hours) * time.Hour)

	records, err := h.service.History(r.Context(), query)
	if err != nil {
		h.serviceError(w, err, gameID, "failed to retrieve history")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"game_id": gameID,
		"since":   query.Since,
		"count":   len(records),
		"history": records,
	})
}

// handleBestLine handles GET /api/v1/games/{id}/best-line
func (h *AnalyticsHandler) handleBestLine(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	market, ok := h.market(w, r, models.MarketMoneyline)
	if !ok {
		return
	}

	view, err := h.service.BestLine(r.Context(), gameID, market)
	if err != nil {
		h.serviceError(w, err, gameID, "failed to compute best line")
		return
	}

	h.jsonResponse(w, http.StatusOK, view)
}

// handleConsensus handles GET /api/v1/games/{id}/consensus
func (h *AnalyticsHandler) handleConsensus(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	market, ok := h.market(w, r, models.MarketMoneyline)
	if !ok {
		return
	}

	view, err := h.service.Consensus(r.Context(), gameID, market)
	if err != nil {
		h.serviceError(w, err, gameID, "failed to compute consensus")
		return
	}

	h.jsonResponse(w, http.StatusOK, view)
}

// handleBaseline handles GET /api/v1/games/{id}/baseline
func (h *AnalyticsHandler) handleBaseline(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	market, ok := h.market(w, r, models.MarketMoneyline)
	if !ok {
		return
	}
	bookmaker := bookmakerParam(r)

	view, err := h.service.Baseline(r.Context(), gameID, market, bookmaker)
	if err != nil {
		h.serviceError(w, err, gameID, "failed to compute baseline")
		return
	}

	h.jsonResponse(w, http.StatusOK, view)
}

// market parses the market query parameter, writing a 400 on failure
func (h *AnalyticsHandler) market(w http.ResponseWriter, r *http.Request, fallback models.MarketType) (models.MarketType, bool) {
	raw := r.URL.Query().Get("market")
	if raw == "" {
		return fallback, true
	}
	market, err := models.ParseMarketType(raw)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return market, true
}

// bookmakerParam reads the bookmaker filter in its stored, normalized form
func bookmakerParam(r *http.Request) models.BookmakerName {
	raw := r.URL.Query().Get("bookmaker")
	if raw == "" {
		return ""
	}
	name, _ := provider.NormalizeBookmaker(raw)
	return name
}

// serviceError maps service errors to status codes
func (h *AnalyticsHandler) serviceError(w http.ResponseWriter, err error, gameID, message string) {
	if errors.Is(err, service.ErrNoOdds) {
		h.logger.Debug().
			Err(err).
			Str("game_id", gameID).
			Msg("odds not found")
		h.errorResponse(w, http.StatusNotFound, "odds not found")
		return
	}

	h.logger.Error().
		Err(err).
		Str("game_id", gameID).
		Msg(message)
	h.errorResponse(w, http.StatusInternalServerError, message)
}

// jsonResponse writes a JSON response
func (h *AnalyticsHandler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

// errorResponse writes a JSON error response
func (h *AnalyticsHandler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{
		"error": message,
	})
}
