package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// serve atende em ln até ctx encerrar e então drena as requests em andamento,
// esperando no máximo drainTimeout. Só devolve depois que Shutdown terminou.
func serve(ctx context.Context, httpSrv *http.Server, ln net.Listener, drainTimeout time.Duration, logger *slog.Logger) error {
	drained := make(chan error, 1)
	go func() {
		<-ctx.Done()
		logger.Info("shutting down", "timeout", drainTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		drained <- httpSrv.Shutdown(shutdownCtx)
	}()

	if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-drained; err != nil {
		logger.Warn("shutdown did not drain in time", "error", err)
		return err
	}
	return nil
}
