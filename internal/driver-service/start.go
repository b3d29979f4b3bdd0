package driverservice

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"driver-service/internal/config"
	"driver-service/internal/driver-service/adapters/driver/myhttp"
	"driver-service/internal/mylogger"
)

// Run starts the driver service and blocks until it stops or the process is
// asked to shut down.
func Run(ctx context.Context, l mylogger.Logger, cfg *config.Config) error {
	shutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	srv := myhttp.NewServer(shutdown, ctx, l, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case <-shutdown.Done():
		l.Info("Gracefully shutting down...")
		stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Stop(stopCtx)
	case err := <-errCh:
		return err
	}
}
