package main

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/deppfellow/seedance-go/internal/config"
	"github.com/deppfellow/seedance-go/internal/handler"
	"github.com/deppfellow/seedance-go/internal/logger"
	"github.com/deppfellow/seedance-go/internal/router"
	"github.com/deppfellow/seedance-go/internal/server"
	"github.com/deppfellow/seedance-go/internal/service"
)

// serve runs the relay until ctx is cancelled, then drains in-flight
// requests for at most the configured write timeout.
func (a *app) serve(ctx context.Context, args []string) error {
	fs := a.flagSet("serve")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewWithWriter(cfg, a.stderr)

	srv, err := server.New(cfg, &log)
	if err != nil {
		return err
	}

	services := service.NewServices(srv)
	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "relay stopped")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Relay.WriteTimeout)
	defer cancel()

	log.Info().Msg("shutting down relay")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("relay stopped")
	return nil
}
