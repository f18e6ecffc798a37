package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"respcheck/app"
	"respcheck/internal"
	"respcheck/internal/config"
)

// App represents the HTTP application
type App struct {
	router  *chi.Mux
	service *app.AnalysisService
	cfg     *config.Config
	log     *internal.Logger
}

// NewApp creates the HTTP application around an analysis service
func NewApp(service *app.AnalysisService, cfg *config.Config, logger *internal.Logger) *App {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	a := &App{
		router:  chi.NewRouter(),
		service: service,
		cfg:     cfg,
		log:     logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)

	// API endpoints
	a.router.Post("/api/analyze", a.handleAnalyze)
	a.router.Get("/api/download/{file}", a.handleDownload)
}

// Router exposes the handler for embedding into another server, and for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.cfg.Server.Port
	a.log.Info("[UI] starting server on %s", addr)
	return http.ListenAndServe(addr, a.router)
}
