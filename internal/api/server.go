// Package api provides the HTTP API server and handlers for the Reiverr server.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/reiverr/reiverr-server/internal/layout"
	"github.com/reiverr/reiverr-server/internal/store"
	"github.com/reiverr/reiverr-server/internal/validation"
)

// Options holds server settings that come from configuration.
type Options struct {
	Version     string
	CORSOrigins []string
	// Inbound rate limit per client IP.
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store     *store.Store
	services  *Services
	renderer  *layout.Renderer
	validator *validation.Validator
	router    *chi.Mux
	api       huma.API
	limiter   *RateLimiter
	opts      Options
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(store *store.Store, services *Services, renderer *layout.Renderer, opts Options, logger *slog.Logger) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 20
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 40
	}

	s := &Server{
		store:     store,
		services:  services,
		renderer:  renderer,
		validator: validation.New(),
		router:    chi.NewRouter(),
		limiter:   NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		opts:      opts,
		logger:    logger,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Reiverr API", opts.Version)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	s.limiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	origins := s.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	}))
	s.router.Use(RateLimitMiddleware(s.limiter, s.logger))
	s.router.Use(middleware.Compress(5))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerPeopleRoutes()
	s.registerDiscoveryRoutes()
	s.registerLayoutRoutes()

	// Server-rendered pages.
	s.router.Get("/person/{id}", s.handlePersonPage)
}
