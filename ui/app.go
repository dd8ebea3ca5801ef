package ui

import (
	"encoding/json"
	"net/http"

	"giftedlens/app"
	"giftedlens/internal/config"
	"giftedlens/internal/errors"
	"giftedlens/internal/logging"
	"giftedlens/internal/recommend"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// App is the JSON API surface: the same audit operation as the dashboard,
// without any HTML
type App struct {
	router *chi.Mux
	svc    *app.AuditService
	cfg    *config.Config
	log    *logging.Logger
}

// NewApp creates the JSON API application
func NewApp(cfg *config.Config, svc *app.AuditService) *App {
	a := &App{
		router: chi.NewRouter(),
		svc:    svc,
		cfg:    cfg,
		log:    logging.New("api"),
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/healthz", a.handleHealth)
	a.router.Post("/api/v1/audit", a.handleAudit)
	a.router.Get("/api/v1/recommendations", a.handleRecommendations)
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.cfg.Server.APIPort
	a.log.Info("API listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Handler exposes the router for tests
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAudit accepts the same multipart form as the dashboard and returns
// the full audit report as JSON
func (a *App) handleAudit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(a.cfg.Upload.MaxUploadMB << 20); err != nil {
		a.respondError(w, errors.InvalidInput("expected multipart form upload"))
		return
	}

	form, err := parseAuditForm(r, a.cfg.Analysis.DefaultMinGroupSize)
	if err != nil {
		a.respondError(w, err)
		return
	}

	report, err := a.svc.Run(form.dataset, form.query)
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, report)
}

func (a *App) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, map[string]string{
		"markdown": recommend.Markdown(),
	})
}

func (a *App) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.log.Error("failed to encode response: %v", err)
	}
}

func (a *App) respondError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeMissingColumns, errors.CodeParseError:
		status = http.StatusUnprocessableEntity
	case errors.CodeInvalidInput:
		status = http.StatusBadRequest
	}

	a.log.Warn("request failed (%s): %v", code, err)
	a.respondJSON(w, status, map[string]string{
		"code":  code,
		"error": err.Error(),
	})
}
