package ui

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"storekpi/app"
	"storekpi/domain/retail"
)

// App is the headless variant of the dashboard: the same JSON API as Server,
// without the rendered page, for embedding behind another frontend.
type App struct {
	router  *chi.Mux
	service *app.DashboardService
	config  Config
}

// Config holds headless API configuration.
type Config struct {
	Port string
}

// NewApp creates a headless dashboard API around an already-loaded service.
func NewApp(config Config, service *app.DashboardService) *App {
	a := &App{
		router:  chi.NewRouter(),
		service: service,
		config:  config,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/api/dashboard", a.handleDashboard)
	a.router.Get("/api/filters", a.handleFilterOptions)
	a.router.Get("/api/dataset/info", a.handleDatasetInfo)
	a.router.Get("/api/dataset/status", a.handleDatasetStatus)
}

// Start starts the HTTP server and blocks.
func (a *App) Start() error {
	addr := ":" + a.config.Port
	log.Printf("Starting headless dashboard API on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleDashboard(w http.ResponseWriter, r *http.Request) {
	filters, err := filterStateFromValues(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	kpi, err := retail.ParseKPI(r.URL.Query().Get("kpi"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	snap, err := a.service.BuildSnapshot(r.Context(), filters, kpi)
	if err != nil {
		log.Printf("[API] Snapshot build failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to build dashboard snapshot"})
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

func (a *App) handleFilterOptions(w http.ResponseWriter, r *http.Request) {
	filters, err := filterStateFromValues(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, a.service.FilterOptions(filters))
}

func (a *App) handleDatasetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.service.Info())
}

func (a *App) handleDatasetStatus(w http.ResponseWriter, r *http.Request) {
	info := a.service.Info()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ready",
		"source":       info.Source,
		"rows_loaded":  info.RowsLoaded,
		"rows_dropped": info.RowsDropped,
		"loaded_at":    info.LoadedAt,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}
