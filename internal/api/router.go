package api

import (
	"net/http"
	"time"

	"github.com/dom/aura-backend/internal/api/handlers"
	"github.com/dom/aura-backend/internal/api/middleware"
	"github.com/dom/aura-backend/internal/config"
	"github.com/dom/aura-backend/internal/logger"
	"github.com/dom/aura-backend/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the HTTP surface. store backs the health check and may be nil.
func NewRouter(services *service.Services, store handlers.Pinger, cfg *config.Config, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(30 * time.Second))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(store, log)
	authHandler := handlers.NewAuthHandler(services.Auth, log)
	profileHandler := handlers.NewProfileHandler(services.Profile, log)

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.With(middleware.Auth(services.Auth, log)).Get("/me", authHandler.Me)
		})

		// Profile routes
		r.Route("/profile", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth, log))
			r.Get("/me", profileHandler.GetProfile)
			r.Post("/", profileHandler.UpsertProfile)
		})
	})

	return r
}
