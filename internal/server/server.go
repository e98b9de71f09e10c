package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/deppfellow/seedance-go/client"
	"github.com/deppfellow/seedance-go/internal/config"
)

// Server holds the long-lived dependencies of the relay.
type Server struct {
	Config *config.Config

	Logger *zerolog.Logger

	// Client forwards validated requests to the generation API.
	Client *client.Client

	httpServer *http.Server
}

func New(cfg *config.Config, logger *zerolog.Logger) (*Server, error) {
	c, err := NewClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &Server{
		Config: cfg,
		Logger: logger,
		Client: c,
	}, nil
}

// NewClient builds a generation client from loaded configuration.
func NewClient(cfg *config.Config, logger *zerolog.Logger) (*client.Client, error) {
	c, err := client.New(client.Options{
		APIKey:       cfg.APIKey,
		BaseURL:      cfg.BaseHost,
		Timeout:      cfg.Timeout,
		PollInterval: cfg.PollInterval,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generation client: %w", err)
	}
	return c, nil
}

func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Relay.Port,
		Handler: handler,

		ReadTimeout:  s.Config.Relay.ReadTimeout,
		WriteTimeout: s.Config.Relay.WriteTimeout,
		IdleTimeout:  s.Config.Relay.IdleTimeout,
	}
}

func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Relay.Port).
		Str("env", s.Config.Env).
		Str("upstream", s.Config.BaseHost).
		Msg("starting relay")

	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	return nil
}
