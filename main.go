package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/home-maintenance-api/auth"
	"github.com/sidhant-sriv/home-maintenance-api/config"
	"github.com/sidhant-sriv/home-maintenance-api/db"
	"github.com/sidhant-sriv/home-maintenance-api/logging"
	"github.com/sidhant-sriv/home-maintenance-api/middleware"
	"github.com/sidhant-sriv/home-maintenance-api/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	logger.Info("Starting Home Maintenance API",
		"version", cfg.Version,
		"environment", cfg.Environment,
		"store", cfg.StoreDriver,
		"auth", cfg.AuthMode,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the record store
	store, err := db.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Set Gin to release mode in production
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.NewRouter(routes.Deps{
		Store:       store,
		Verifier:    auth.NewVerifier(cfg, logger),
		Logger:      logger,
		Metrics:     middleware.NewMetrics(),
		Version:     cfg.Version,
		Environment: cfg.Environment,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           middleware.CORS(cfg.CORSOrigins)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server running", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
