package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/alexivanou/cityweather/internal/model"
	"github.com/alexivanou/cityweather/internal/service"
	"github.com/alexivanou/cityweather/internal/stats"
	"go.uber.org/zap"
)

const (
	msgCityRequired  = "City is required"
	msgUpstreamError = "Error fetching weather data"
)

// Handler handles HTTP requests
type Handler struct {
	service  service.ServiceInterface
	counters *stats.Counters
	logger   *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface, counters *stats.Counters, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, counters: counters, logger: logger}
}

// GetWeather handles GET /weather
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")

	body, err := h.service.CurrentWeather(r.Context(), city)
	if err != nil {
		if errors.Is(err, service.ErrCityRequired) {
			h.counters.Record(stats.OutcomeValidationError)
			writeError(w, h.logger, http.StatusBadRequest, msgCityRequired)
			return
		}
		// the cause stays in the log, never in the response
		h.counters.Record(stats.OutcomeUpstreamError)
		h.logger.Error("Error fetching weather data",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		writeError(w, h.logger, http.StatusInternalServerError, msgUpstreamError)
		return
	}

	h.counters.Record(stats.OutcomeSuccess)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Warn("Error writing weather response", zap.Error(err))
	}
}

// SuggestCities handles GET /api/v1/suggest
func (h *Handler) SuggestCities(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			writeError(w, h.logger, http.StatusBadRequest, "invalid limit parameter")
			return
		}
	}

	req := model.SuggestRequest{
		Query: r.URL.Query().Get("q"),
		Limit: limit,
	}

	response, err := h.service.SuggestCities(r.Context(), req)
	if err != nil {
		h.logger.Error("Error suggesting cities", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, response)
}

// ListCities handles GET /api/v1/cities
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.service.DefaultCities(r.Context())
	if err != nil {
		h.logger.Error("Error listing cities", zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, h.logger, http.StatusOK, model.CitiesResponse{Cities: cities})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func writeError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	writeJSON(w, logger, status, model.ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Error encoding response", zap.Error(err))
	}
}
