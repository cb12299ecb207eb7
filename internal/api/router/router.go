package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/wellnessgrove/clinic-assistant/internal/http/handlers"
	httpmiddleware "github.com/wellnessgrove/clinic-assistant/internal/http/middleware"
	"github.com/wellnessgrove/clinic-assistant/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger         *logging.Logger
	VapiHandler    *handlers.VapiHandler
	LogWebhook     *handlers.LogWebhookHandler
	MetricsHandler http.Handler
}

// New creates a new Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Vapi function-call surface. /agent mirrors / so the assistant
	// can be pointed at either.
	r.Get("/", cfg.VapiHandler.Live)
	r.Post("/", cfg.VapiHandler.Handle)
	r.Post("/agent", cfg.VapiHandler.Handle)

	if cfg.LogWebhook != nil {
		r.Post("/webhooks/*", cfg.LogWebhook.Handle)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
