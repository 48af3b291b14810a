package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"airport-feedback/internal/middleware"
)

// RouterConfig carries what NewRouter wires besides the feedback handler.
type RouterConfig struct {
	Logger         *zap.SugaredLogger
	AllowedOrigins []string
	// Metrics serves GET /metrics when set.
	Metrics http.Handler
}

// NewRouter builds the API routes and global middleware.
func NewRouter(feedback *FeedbackHandler, cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logger != nil {
		r.Use(middleware.NewRequestLogger(cfg.Logger))
	}
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.AllowedOrigins))

	r.Get("/health", Health)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api/feedback", func(r chi.Router) {
		r.Post("/", feedback.SubmitFeedback)
		r.Get("/", feedback.ListFeedback)
		r.Get("/summary", feedback.Summary)
		r.Get("/export", feedback.Export)
	})

	return r
}
