package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/kozaktomas/passport-photo/internal/ai"
	"github.com/kozaktomas/passport-photo/internal/config"
	"github.com/kozaktomas/passport-photo/internal/passport"
	"github.com/kozaktomas/passport-photo/internal/sheet"
	"github.com/kozaktomas/passport-photo/internal/web/handlers"
	"github.com/kozaktomas/passport-photo/internal/web/middleware"
)

// storeCleanupInterval is how often expired photos are dropped from memory.
const storeCleanupInterval = time.Minute

// Server represents the web server
type Server struct {
	config     *config.Config
	router     *chi.Mux
	httpServer *http.Server
	provider   ai.Provider
	pipeline   *sheet.Pipeline
	store      *handlers.PhotoStore
}

// NewServer creates a new web server for the given AI provider and sheet pipeline.
func NewServer(cfg *config.Config, provider ai.Provider, pipeline *sheet.Pipeline) *Server {
	r := chi.NewRouter()

	store := handlers.NewPhotoStore(time.Duration(cfg.Web.PhotoTTLMinutes)*time.Minute, cfg.Web.PhotoStoreMax)
	store.StartCleanup(storeCleanupInterval)

	s := &Server{
		config:   cfg,
		router:   r,
		provider: provider,
		pipeline: pipeline,
		store:    store,
	}

	// Set up middleware stack
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(cfg.AI.Timeout() + 30*time.Second))
	r.Use(middleware.CORS(cfg.Web.AllowedOrigins))
	r.Use(middleware.SecurityHeaders())

	s.setupRoutes(passport.Default())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.AI.Timeout() + time.Minute, // generation can take minutes
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting web server on http://%s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server and forgets every stored photo.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down web server...")

	s.store.Stop()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing
func (s *Server) Router() *chi.Mux {
	return s.router
}
