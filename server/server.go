// Package server provides HTTP server management and lifecycle handling for
// the pharmacovigilance API. It includes server setup, middleware
// configuration, route management, and graceful shutdown capabilities.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/giygas/pharmacovigilance-api/config"
	"github.com/giygas/pharmacovigilance-api/interfaces"
	"github.com/giygas/pharmacovigilance-api/logging"
	"github.com/giygas/pharmacovigilance-api/metrics"
)

// Server represents the HTTP server
type Server struct {
	server  *http.Server
	router  chi.Router
	handler interfaces.HTTPHandler
	config  *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, handler interfaces.HTTPHandler) *Server {
	router := chi.NewRouter()

	server := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:  router,
		handler: handler,
		config:  cfg,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.Logger()))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(RateLimitHandler)
	s.router.Use(metrics.Metrics)
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Post("/process-report", s.handler.ProcessReport)
	s.router.Get("/reports", s.handler.ListReports)
	s.router.Get("/reports/{reportId}", s.handler.GetReportByID)
	s.router.Post("/translate", s.handler.TranslateOutcome)
	s.router.Get("/stats", s.handler.Stats)
	s.router.Get("/health", s.handler.HealthCheck)
	s.router.Handle("/metrics", promhttp.Handler())
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// Start starts the server
func (s *Server) Start() error {
	// Start profiling server if in development mode
	if s.config.Env == "dev" {
		s.startProfilingServer()
	}

	logging.Info(fmt.Sprintf("Starting server at: %s:%s", s.config.Address, s.config.Port))
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		// If graceful shutdown fails, force close
		if err := s.server.Close(); err != nil {
			logging.Error("Server close error", "error", err)
			return err
		}
	}

	logging.Info("Server shutdown complete")
	return nil
}

// startProfilingServer starts the pprof profiling server in development mode
func (s *Server) startProfilingServer() {
	go func() {
		fmt.Println("Profiling server started at http://localhost:6060/debug/pprof/")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			fmt.Println("Profiling server failed: ", err)
		}
	}()
}
