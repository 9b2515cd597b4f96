// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the composition root of the HTTP transport (chi router).
  - Health probes are public; everything under /api/v1 requires a bearer token.
  - Catalog routes run under the global request deadline, generation routes
    under the longer one.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/pagetemplate"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/catalog/style"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/dashboard"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/config"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/constants"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/platform/middleware"
	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/studio"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups every HTTP handler set.
type Handlers struct {
	// Liveness is the /health handler; it returns 200 while the process is up.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; it returns 200 when dependencies answer.
	Readiness http.HandlerFunc

	PageTemplate *pagetemplate.Handler
	Style        *style.Handler
	Studio       *studio.Handler
	Dashboard    *dashboard.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := NewRouter(context, cfg, log, verifier, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree. It is separate from [NewServer] so
// tests can drive it with httptest.
func NewRouter(context context.Context, cfg middleware.AppConfig, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	limiter := middleware.NewRateLimiter(context, constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery)
	r.Use(middleware.CORS(cfg))
	r.Use(limiter.Middleware)
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Authenticate(verifier))

		api.Group(func(catalog chi.Router) {
			catalog.Use(chimw.Timeout(constants.GlobalRequestTimeout))

			catalog.Mount("/page-templates", h.PageTemplate.Routes())
			catalog.Mount("/dashboard", h.Dashboard.Routes())
			catalog.Mount("/billing", h.Studio.BillingRoutes())
		})

		api.Route("/styles", func(styles chi.Router) {
			styles.Group(func(tools chi.Router) {
				tools.Use(chimw.Timeout(constants.GenerationRequestTimeout))
				h.Studio.RegisterStyleTools(tools)
			})

			styles.With(chimw.Timeout(constants.GlobalRequestTimeout)).Mount("/", h.Style.Routes())
		})
	})

	return r
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
