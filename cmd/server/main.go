package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockroom/internal/auth"
	"stockroom/internal/config"
	"stockroom/internal/database"
	"stockroom/internal/handler"
	"stockroom/internal/media"
	"stockroom/internal/repository"
	"stockroom/internal/router"
	"stockroom/internal/service"
	"stockroom/internal/web"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting stockroom server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return err
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)

	// Initialize media storage, S3 or local directory
	var mediaStore media.Store
	if cfg.Media.S3Enabled {
		mediaStore, err = media.NewS3Store(ctx, cfg.Media.S3Bucket, cfg.Media.S3Region, cfg.Media.S3Prefix, cfg.Media.BaseURL, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 media store: %w", err)
		}
	} else {
		mediaStore, err = media.NewFileStore(cfg.Media.Dir, cfg.Media.BaseURL, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize media store: %w", err)
		}
		logger.Info().Str("dir", cfg.Media.Dir).Msg("using local file system for media (S3 disabled)")
	}

	// Initialize authentication and bootstrap the staff account
	authManager := auth.NewManager(userRepo, cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, logger)
	if err := authManager.BootstrapAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return fmt.Errorf("failed to bootstrap staff account: %w", err)
	}

	// Initialize services
	productService := service.NewProductService(productRepo, mediaStore, logger)

	// Initialize HTTP handlers
	productAPI := handler.NewProductAPI(productService, logger)
	webHandler, err := web.NewHandler(productService, authManager, cfg.Inventory.Currency, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize web handler: %w", err)
	}

	// Initialize router
	mux := router.New(webHandler, productAPI, authManager, cfg, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
