package api

import (
	"net/http"

	"github.com/alexivanou/cityweather/internal/service"
	"github.com/alexivanou/cityweather/internal/stats"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router
func NewRouter(service service.ServiceInterface, statsCollector *stats.Collector, counters *stats.Counters, logger *zap.Logger) *mux.Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := NewHandler(service, counters, logger)
	statsHandler := NewStatsHandler(statsCollector, logger)

	router := mux.NewRouter()
	router.Use(RequestID, AccessLog(logger), CORS)

	// OPTIONS is routed so CORS can answer preflight requests
	methods := []string{http.MethodGet, http.MethodOptions}

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods(methods...)

	// Weather proxy
	router.HandleFunc("/weather", handler.GetWeather).Methods(methods...)

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/cities", handler.ListCities).Methods(methods...)
	v1.HandleFunc("/suggest", handler.SuggestCities).Methods(methods...)
	v1.HandleFunc("/stats", statsHandler.GetStats).Methods(methods...)

	return router
}
