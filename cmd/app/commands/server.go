package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/earkms/internal/app"
	"github.com/allisson/earkms/internal/config"
)

// RunServer starts the operational HTTP server with graceful shutdown support.
// Loads configuration, initializes the DI container, and serves health and
// metrics endpoints. When reconcileTenantID is non-empty, a background loop
// periodically scans that tenant's account for CMKs without an alias and logs
// any it finds. Blocks until receiving SIGINT/SIGTERM or encountering a fatal
// error.
func RunServer(ctx context.Context, version, reconcileTenantID string) error {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on log level
	gin.SetMode(cfg.GetGinMode())

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()
	logger.Info("starting server", slog.String("version", version))

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get metrics server from container (this initializes all dependencies)
	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the background orphan scan when a tenant was given
	if reconcileTenantID != "" {
		tenantID, err := parseTenantID(reconcileTenantID)
		if err != nil {
			return err
		}

		keyUseCase, err := container.KeyUseCase()
		if err != nil {
			return fmt.Errorf("failed to initialize key use case: %w", err)
		}

		go func() {
			ticker := time.NewTicker(cfg.ReconcileInterval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					orphans, err := keyUseCase.ReconcileOrphans(ctx, tenantID)
					if err != nil {
						logger.Error("orphan scan failed", slog.Any("error", err))
						continue
					}
					for _, orphan := range orphans {
						logger.Warn(
							"found CMK without an alias",
							slog.String("key_id", orphan.KeyID),
							slog.String("arn", orphan.ARN),
						)
					}
				}
			}
		}()
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		if err := metricsServer.Start(ctx); err != nil {
			serverErr <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.DBConnMaxLifetime)
		defer shutdownCancel()

		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics server shutdown: %w", err)
		}
	case err := <-serverErr:
		// Attempt graceful shutdown if the server fails
		logger.Error("server error, initiating shutdown", slog.Any("error", err))
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.DBConnMaxLifetime)
		defer shutdownCancel()

		if shutErr := metricsServer.Shutdown(shutdownCtx); shutErr != nil {
			return errors.Join(err, fmt.Errorf("metrics server shutdown: %w", shutErr))
		}
		return err
	}

	return nil
}
