package stackctl

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stackctl/internal/httpapi"
)

// runServe hosts the read-only status API until interrupted, then shuts the
// listener down gracefully (Ctrl+C / SIGTERM).
func (a *app) runServe(flagAddr string) error {
	addr := a.resolveAddr(flagAddr)
	srv := &http.Server{Addr: addr, Handler: httpapi.NewMux(a.table)}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Msg("stackctl status API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		a.log.Warn().Err(err).Msg("graceful shutdown error")
		return err
	}
	return nil
}
