// Package server wires storage, handlers and middleware into the HTTP
// ingest backend.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abhishekk-y16/KisanMitra/internal/server/handlers"
	"github.com/abhishekk-y16/KisanMitra/internal/server/middleware"
	"github.com/abhishekk-y16/KisanMitra/internal/server/storage/sqlite"
	"github.com/abhishekk-y16/KisanMitra/internal/server/token"
)

// Config holds the server configuration
type Config struct {
	Addr          string
	EnrollmentKey string
	TokenSecret   []byte
	TokenTTL      time.Duration
	Version       string

	// EnrollRate limits enrollment attempts per client IP per window
	EnrollRate   int
	EnrollWindow time.Duration
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.EnrollRate <= 0 {
		c.EnrollRate = 10
	}
	if c.EnrollWindow <= 0 {
		c.EnrollWindow = 5 * time.Minute
	}
	if c.Version == "" {
		c.Version = "dev"
	}
	return c
}

// Server is the HTTP ingest backend
type Server struct {
	httpServer *http.Server
	storage    *sqlite.Storage
	logger     *slog.Logger
}

// New builds the server over an opened storage
func New(storage *sqlite.Storage, cfg Config, logger *slog.Logger) *Server {
	cfg = cfg.withDefaults()

	tokenConfig := token.Config{
		Secret:         cfg.TokenSecret,
		AccessTokenTTL: cfg.TokenTTL,
		Issuer:         "kisanmitra",
	}

	healthHandler := handlers.NewHealthHandler(storage.DB(), cfg.Version, logger)
	deviceHandler := handlers.NewDeviceHandler(storage, tokenConfig, cfg.EnrollmentKey, logger)
	recordHandler := handlers.NewRecordHandler(storage, logger)

	auth := middleware.AuthMiddleware(logger, tokenConfig)
	enrollLimit := middleware.RateLimitMiddleware(cfg.EnrollRate, cfg.EnrollWindow, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", healthHandler.Health)
	mux.Handle("POST /api/v1/devices/enroll", enrollLimit(http.HandlerFunc(deviceHandler.Enroll)))
	mux.Handle("POST /api/v1/records/{collection}", auth(http.HandlerFunc(recordHandler.Submit)))
	mux.Handle("GET /api/v1/records/{collection}", auth(http.HandlerFunc(recordHandler.List)))
	mux.Handle("GET /api/v1/records/{collection}/{id}", auth(http.HandlerFunc(recordHandler.Get)))
	mux.Handle("GET /api/v1/stats", auth(http.HandlerFunc(recordHandler.Stats)))

	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(logger, []string{"/api/v1/health"})(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		storage: storage,
		logger:  logger,
	}
}

// Handler exposes the routed handler for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
