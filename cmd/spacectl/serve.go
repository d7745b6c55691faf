package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/space-dashboard/internal/adapter/api"
	"github.com/couchcryptid/space-dashboard/internal/adapter/httpadapter"
	"github.com/couchcryptid/space-dashboard/internal/scheduler"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard API with health, readiness and metrics endpoints",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return serve()
	},
}

func serve() error {
	a, err := newApp(logService)
	if err != nil {
		return err
	}
	defer a.close()

	sched, err := scheduler.New(a.cfg.LaunchRefreshCron, a.cfg.APODRefreshCron, a.cfg.DisplayLocation, a.dash, a.logger, a.metrics)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := httpadapter.NewServer(a.cfg.HTTPAddr, a.dash, api.NewServer(a.dash, a.logger).Handler(), a.logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server. /readyz reports not ready until the bodies settle.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("http server error", "error", err)
		}
	}()

	// Initial load of all three feeds, then scheduled refreshes.
	go func() {
		a.dash.Load(ctx)
		if ctx.Err() == nil {
			sched.Start(ctx)
		}
	}()

	<-ctx.Done()
	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", "error", err)
	}
	sched.Stop()

	a.logger.Info("shutdown complete")
	return nil
}
