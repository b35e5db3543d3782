package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/auth"
	"github.com/dangerclosesec/audiencelab/internal/metrics"
	"github.com/dangerclosesec/audiencelab/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig carries everything the HTTP surface is built from.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Responder      *Responder
	Sessions       auth.Authenticator
	Applications   auth.Authenticator
	AllowedOrigins []string
	Timeout        time.Duration

	Auth       *AuthHandler
	Apps       *ApplicationHandler
	Analytics  *AnalyticsHandler
	Personas   *PersonaHandler
	Campaigns  *CampaignHandler
	Contents   *ContentHandler
	Generation *GenerationHandler
	Catalog    *CatalogHandler
	AuditLogs  *AuditLogHandler
}

// NewRouter mounts the API under /api. Session routes and machine routes use
// separate authenticators and never accept each other's credentials.
func NewRouter(cfg RouterConfig) http.Handler {
	rs := cfg.Responder
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}

	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger, rs))
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.AuditContext)
	r.Use(chimw.Timeout(timeout))
	// Without configured origins only same-origin callers are served.
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/signup", cfg.Auth.Signup)
		r.Post("/auth/signin", cfg.Auth.Signin)
		r.Get("/industries", cfg.Catalog.Industries)
		r.Get("/age_ranges", cfg.Catalog.AgeRanges)

		// Machine routes, authenticated by application id and key
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.Applications, rs))

			r.Post("/applications/{appId}/authenticate", cfg.Apps.Authenticate)
			r.Post("/applications/{appId}/add-platform-user", cfg.Apps.AddPlatformUser)
		})

		// Session routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.Sessions, rs))

			r.Post("/auth/signout", cfg.Auth.Signout)
			r.Get("/auth/me", cfg.Auth.Me)

			r.Get("/applications", cfg.Apps.List)
			r.Post("/applications", cfg.Apps.Create)
			r.Get("/analytics", cfg.Analytics.Application)
			r.Get("/dashboard/overview", cfg.Analytics.Dashboard)

			r.Get("/personas", cfg.Personas.List)
			r.Post("/personas", cfg.Personas.Create)
			r.Get("/campaigns", cfg.Campaigns.List)
			r.Post("/campaigns", cfg.Campaigns.Create)
			r.Patch("/campaigns/{id}/status", cfg.Campaigns.UpdateStatus)
			r.Get("/content", cfg.Contents.List)
			r.Patch("/content/{id}/status", cfg.Contents.UpdateStatus)

			r.Post("/generate-persona", cfg.Generation.Persona)
			r.Post("/generate-campaign", cfg.Generation.Campaign)
			r.Post("/generate-content", cfg.Generation.Content)

			r.With(middleware.RequireAdmin(rs)).Get("/audit-logs", cfg.AuditLogs.List)
		})
	})

	return r
}
