package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"lcstats/pkg/config"
	"lcstats/pkg/logger"
	"lcstats/pkg/processor"
	"lcstats/pkg/roster"
)

const shutdownTimeout = 10 * time.Second

// Server is the web UI and JSON API
type Server struct {
	cfg     *config.Config
	fetcher processor.StatsFetcher
	reader  *roster.Reader
	pages   *template.Template
	logger  logger.Logger
}

// New creates a Server that looks profiles up with fetcher
func New(cfg *config.Config, fetcher processor.StatsFetcher, log logger.Logger) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logger.GetLogger()
	}
	log = log.WithField("component", "server")

	return &Server{
		cfg:     cfg,
		fetcher: fetcher,
		reader:  roster.NewReader(&cfg.Input, log),
		pages:   parsePages(cfg.LeetCode.BaseURL),
		logger:  log,
	}
}

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", srv.Addr).Info("Web UI listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down web UI")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newProcessor builds a per-request processor
func (s *Server) newProcessor(requestID string) *processor.Processor {
	log := s.logger
	if requestID != "" {
		log = log.WithField("request_id", requestID)
	}
	return processor.New(s.fetcher, &s.cfg.Input, log)
}
