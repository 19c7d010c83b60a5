package server

import (
	"context"
	"errors"
	"go.uber.org/zap"
	"invoice-service/config"
	"net/http"
	"time"
)

type Server struct {
	logger          *zap.Logger
	http            *http.Server
	shutdownTimeout time.Duration
}

func New(cfg *config.Config, logger *zap.Logger, handler http.Handler) *Server {
	return &Server{
		logger: logger,
		http: &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}
}

// Run serves HTTP until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
