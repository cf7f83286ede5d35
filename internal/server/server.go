// Package server exposes the analysis pipeline over HTTP for the web
// frontend.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/quantfold/thesisgrade/internal/model"
)

// Server wraps an http.Server with the analysis route tree.
type Server struct {
	srv *http.Server
	log *zap.Logger
}

// New builds the server around an analyzer.
func New(analyzer Analyzer, cfg model.ServerConfig, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	h := &handler{
		analyzer: analyzer,
		origins:  cfg.AllowedOrigins,
		log:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("POST /api/analyze", h.analyze)
	mux.HandleFunc("OPTIONS /api/analyze", h.preflight)

	return &Server{
		srv: &http.Server{
			Addr:         cfg.Addr,
			Handler:      h.withCORS(mux),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log: log,
	}
}

// Start blocks serving requests until Stop or a listener error.
func (s *Server) Start() error {
	s.log.Info("http server listening", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Stop drains in-flight requests and shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	s.log.Info("http server stopped")
	return nil
}

// Handler exposes the route tree for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
