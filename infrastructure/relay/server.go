package relay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"mosaic-media/domain/webhook"
)

// SignatureHeader carries the shared webhook secret on every delivery
const SignatureHeader = "X-Mosaic-Signature"

// Server is the webhook relay: it receives Mosaic agent-run callbacks,
// records them in a bounded history, and renders them for a human watching
// the terminal. Each Server owns its own history; there is no package state.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	history    *webhook.History
	secret     string
	output     io.Writer
}

// ServerConfig configures a relay server
type ServerConfig struct {
	Port    int
	Secret  string           // Optional; empty disables signature validation
	History *webhook.History // Optional; a default-capacity history is created when nil
	Logger  *slog.Logger
	Output  io.Writer // Optional sink for rendered event summaries
}

// NewServer creates a relay server listening on the configured port
func NewServer(cfg ServerConfig) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.History == nil {
		cfg.History = webhook.NewHistory(webhook.DefaultHistoryCapacity)
	}
	if cfg.Output == nil {
		cfg.Output = io.Discard
	}

	s := &Server{
		logger:  cfg.Logger,
		history: cfg.History,
		secret:  cfg.Secret,
		output:  cfg.Output,
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start blocks serving requests until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("starting webhook relay", "addr", s.httpServer.Addr, "secret_validation", s.secret != "")
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down webhook relay")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
