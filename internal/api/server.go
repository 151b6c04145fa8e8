// Package api provides the HTTP API server and handlers for HabitLoop.
package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/habitloop/habitloop-server/internal/config"
	"github.com/habitloop/habitloop-server/internal/http/response"
	"github.com/habitloop/habitloop-server/internal/logger"
	"github.com/habitloop/habitloop-server/internal/ratelimit"
	"github.com/habitloop/habitloop-server/internal/service"
	"github.com/habitloop/habitloop-server/internal/sse"
	"github.com/habitloop/habitloop-server/internal/store"
)

// Services groups the application services the handlers depend on.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth  *service.AuthService
	Docs  *service.DocumentService
	Stats *service.StatsService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *store.Store
	services        *Services
	sseManager      *sse.Manager
	sseHandler      *sse.Handler
	router          *chi.Mux
	api             huma.API
	logger          *logger.Logger
	authRateLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st *store.Store, services *Services, sseManager *sse.Manager, log *logger.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-User-Mobile"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(authMiddleware(services.Auth))

	humaConfig := huma.DefaultConfig(cfg.Server.Name, "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:           st,
		services:        services,
		sseManager:      sseManager,
		sseHandler:      sse.NewHandler(sseManager, log.Logger),
		router:          router,
		api:             api,
		logger:          log,
		authRateLimiter: ratelimit.New(5, 10),
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerDataRoutes()
	s.registerStatsRoutes()
	s.registerHabitRoutes()
	s.registerTaskRoutes()

	// SSE streams outside huma: the connection is long-lived and the
	// envelope transformer must not touch it.
	router.Get("/api/events", s.handleEvents)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-owned resources.
func (s *Server) Close() {
	s.authRateLimiter.Stop()
}

// handleEvents upgrades the request to an SSE stream for the identity.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	identity, err := GetIdentity(r.Context())
	if err != nil {
		response.Unauthorized(w, "Authentication required", s.logger.Logger)
		return
	}
	s.sseHandler.Stream(w, r, identity)
}
