package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/misemon/pkg/usecase"
)

// UseCases bundles the use cases served over HTTP
type UseCases struct {
	alert       usecase.AlertUseCase
	station     usecase.StationUseCase
	preferences usecase.PreferencesUseCase
}

// NewUseCases creates the use case bundle for the HTTP server
func NewUseCases(alert usecase.AlertUseCase, station usecase.StationUseCase, preferences usecase.PreferencesUseCase) *UseCases {
	return &UseCases{
		alert:       alert,
		station:     station,
		preferences: preferences,
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
	router  chi.Router
	handler *apiHandler
}

// NewServer creates a new HTTP server
func NewServer(ctx context.Context, addr string, useCases *UseCases) (*Server, error) {
	router := chi.NewRouter()
	handler := newAPIHandler(useCases)

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(PrometheusMiddleware)
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Use(CORS)
		r.Use(middleware.NoCache)

		r.Get("/alerts", handler.handleAlerts)

		r.Get("/preferences", handler.handleGetPreferences)
		r.Put("/preferences", handler.handlePutPreferences)

		r.Delete("/cache", handler.handleClearCache)
		r.Get("/stations", handler.handleStations)
	})

	server := &Server{
		Server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
		router:  router,
		handler: handler,
	}

	return server, nil
}

// handleHealth handles health check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "misemon",
	}); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, map[string]string{
		"error": message,
	})
}
