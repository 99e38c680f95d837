// Package api provides the HTTP API server and handlers for LinkStash.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/listenupapp/linkstash/internal/auth"
	"github.com/listenupapp/linkstash/internal/http/response"
	"github.com/listenupapp/linkstash/internal/ratelimit"
	"github.com/listenupapp/linkstash/internal/store"
)

// Version is reported in the OpenAPI document.
const Version = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store          store.Store
	services       *Services
	verifier       auth.Verifier
	extractLimiter *ratelimit.KeyedRateLimiter
	router         *chi.Mux
	api            huma.API
	logger         *slog.Logger
}

// Options configures the parts of the server that are not services.
type Options struct {
	// Verifier resolves bearer tokens to subjects.
	Verifier auth.Verifier
	// ExtractLimiter throttles POST /extract per subject, or per client IP
	// for anonymous callers. Nil disables it.
	ExtractLimiter *ratelimit.KeyedRateLimiter
	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string
	// TrustProxyHeaders takes the client IP from X-Forwarded-For or
	// X-Real-IP. Leave off unless a reverse proxy sets them.
	TrustProxyHeaders bool
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		store:          st,
		services:       services,
		verifier:       opts.Verifier,
		extractLimiter: opts.ExtractLimiter,
		router:         chi.NewRouter(),
		logger:         logger,
	}

	s.setupMiddleware(opts.AllowedOrigins, opts.TrustProxyHeaders)
	s.setupAPI()
	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) setupMiddleware(allowedOrigins []string, trustProxy bool) {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	if trustProxy {
		s.router.Use(middleware.RealIP)
	}
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	s.router.Use(authMiddleware(s.verifier, s.logger))

	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "route not found", s.logger)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusMethodNotAllowed, response.Failure("METHOD_NOT_ALLOWED", "method not allowed", nil), s.logger)
	})
}

func (s *Server) setupAPI() {
	humaConfig := huma.DefaultConfig("LinkStash API", Version)
	humaConfig.Info.Description = "Personal bookmark manager"
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerExtractRoutes()
	s.registerBookmarkRoutes()
	s.registerCollectionRoutes()
	s.registerTagRoutes()
	s.registerTranscriptRoutes()
	s.registerTodoRoutes()
}

// bearer is the security requirement attached to every /api/v1 operation.
var bearer = []map[string][]string{{"bearer": {}}}
