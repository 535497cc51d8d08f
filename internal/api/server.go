package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/pinetree/internal/config"
	"github.com/dgallion1/pinetree/internal/pine"
	"github.com/dgallion1/pinetree/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// Server is the HTTP API server for hosted tree widgets.
type Server struct {
	router   chi.Router
	manager  *session.Manager
	validate *validator.Validate
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(manager *session.Manager, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		manager:  manager,
		validate: newValidator(),
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

// newValidator returns a validator with the "classprefix" tag bound to the
// widget prefix rule.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("classprefix", func(fl validator.FieldLevel) bool {
		return pine.ValidatePrefix(fl.Field().String()) == nil
	})
	if err != nil {
		panic(err)
	}
	return v
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/widgets", s.handleCreateWidget)
		r.Post("/api/widgets/upload", s.handleUploadWidget)
		r.Get("/api/widgets/{widgetID}", s.handleGetWidget)
		r.Delete("/api/widgets/{widgetID}", s.handleDeleteWidget)
		r.Post("/api/widgets/{widgetID}/click", s.handleClick)
		r.Get("/api/widgets/{widgetID}/selection", s.handleSelection)

		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"widgets": s.manager.Count(),
	})
}
