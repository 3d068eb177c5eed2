package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/openmetab/keggmatch/internal/config"
	"github.com/openmetab/keggmatch/internal/infrastructure/monitoring/logging"
)

// Server wraps the stdlib HTTP server around the gin router with graceful
// shutdown.
type Server struct {
	srv    *http.Server
	logger logging.Logger
	cfg    config.ServerConfig
}

// NewServer creates a Server listening on the configured port.
func NewServer(cfg *config.Config, handler http.Handler, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Server{
		cfg:    cfg.Server,
		logger: logger,
		srv: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      handler,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// Start serves until Stop is called or the listener fails. A normal
// shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", logging.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests and shuts the server down, bounded by the
// configured shutdown timeout.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
