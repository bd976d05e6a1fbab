// Package api exposes the generation pipeline over HTTP.
package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ignite/campaignforge/internal/config"
	"github.com/ignite/campaignforge/internal/pipeline"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server wires the pipeline behind a chi router.
type Server struct {
	config    config.ServerConfig
	pipeline  *pipeline.Pipeline
	selector  *pipeline.Selector
	providers pipeline.Providers
	router    *chi.Mux
	server    *http.Server
	startTime time.Time
}

// NewServer builds the server and its routes.
func NewServer(cfg config.ServerConfig, p *pipeline.Pipeline, selector *pipeline.Selector, providers pipeline.Providers, throttle config.ThrottleConfig) *Server {
	s := &Server{
		config:    cfg,
		pipeline:  p,
		selector:  selector,
		providers: providers,
		startTime: time.Now(),
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)

	r.Group(func(r chi.Router) {
		r.Use(throttleMiddleware(throttle))
		r.Post("/campaign/generate", s.handleGenerate)
	})

	s.router = r
	return s
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler { return s.router }

// Start runs the HTTP server until the context is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.GetHost(), s.config.Port)
	// Image generation can legitimately take minutes under fallback polling,
	// so the write timeout is generous.
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[api] listening on %s", addr)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		log.Printf("[api] shutting down")
		return s.server.Shutdown(shutdownCtx)
	}
}
