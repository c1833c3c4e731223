package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ignisVeneficus/bistro/config"
	"github.com/ignisVeneficus/bistro/logging"
)

const shutdownTimeout = 10 * time.Second

// SetMode picks the gin mode for env.
func SetMode(env config.Environment) {
	gin.SetMode(gin.ReleaseMode)
	if env.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	}
}

// Serve listens on the configured address until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handler,

		ReadTimeout:       cfg.Server.Timeouts.Read,
		ReadHeaderTimeout: cfg.Server.Timeouts.Header,
		WriteTimeout:      cfg.Server.Timeouts.Write,
		IdleTimeout:       cfg.Server.Timeouts.Idle,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server.Serve", "listen", "ok", "", map[string]any{"addr": cfg.Server.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("server.Serve", "shutdown", err, nil)
		return err
	}
	logging.Info("server.Serve", "shutdown", "ok", "", nil)
	return nil
}
