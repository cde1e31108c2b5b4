package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tent9481/product-apis/internal/config"
	"github.com/Tent9481/product-apis/internal/database"
	"github.com/Tent9481/product-apis/internal/handler"
	"github.com/Tent9481/product-apis/internal/repository"
	"github.com/Tent9481/product-apis/internal/router"
	"github.com/Tent9481/product-apis/internal/service"
	"github.com/Tent9481/product-apis/internal/source"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting product API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := prepareDatabase(ctx, pool, cfg.Database, logger); err != nil {
		return err
	}
	prometheus.MustRegister(database.NewPoolStatsCollector(pool))

	upstream := newUpstream("electronics", cfg.Upstream, logger)
	brandsUpstream := newUpstream("brands", cfg.Upstream, logger)

	snapshot, err := loadSnapshot(ctx, cfg, upstream, logger)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	// Repositories
	productRepo := repository.NewProductRepository(pool, logger)
	brandRepo := repository.NewBrandRepository(logger)
	tx := repository.NewTransactor(pool, logger)

	// Services
	electronics := source.NewExternal(upstream, cfg.Upstream.ElectronicsURL)
	brands := source.NewExternal(brandsUpstream, cfg.Upstream.BrandsURL)
	sources := service.CatalogSources{
		Electronics: electronics,
		Merged:      source.NewMerged(electronics, brands, time.Now),
		Relational:  source.NewRelational(productRepo, time.Now),
	}
	if snapshot != nil {
		sources.Snapshot = snapshot
	}
	catalogService := service.NewCatalogService(sources, productRepo, time.Now, logger)
	productService := service.NewProductService(tx, productRepo, brandRepo, time.Now, logger)

	mux := router.New(router.Handlers{
		Catalog: handler.NewCatalogHandler(catalogService, logger),
		Product: handler.NewProductHandler(productService, logger),
		Health:  handler.NewHealthHandler(pool, logger),
	}, cfg.Auth.APIKey, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// newUpstream builds one upstream client. Each upstream API gets its own
// circuit breaker.
func newUpstream(name string, cfg config.UpstreamConfig, logger zerolog.Logger) *source.Upstream {
	upstreamCfg := source.DefaultUpstreamConfig(name)
	upstreamCfg.Timeout = cfg.Timeout
	upstreamCfg.MaxRetries = cfg.MaxRetries
	upstreamCfg.BreakerMaxFailures = cfg.BreakerMaxFailures
	upstreamCfg.BreakerOpenTimeout = cfg.BreakerOpenTimeout
	return source.NewUpstream(upstreamCfg, nil, logger)
}

// prepareDatabase applies migrations and, when asked for, wipes and seeds.
func prepareDatabase(ctx context.Context, db database.Conn, cfg config.DatabaseConfig, logger zerolog.Logger) error {
	if cfg.ResetOnStart {
		logger.Warn().Msg("DB_RESET_ON_START set, dropping all tables")
		if err := database.Reset(ctx, db, logger); err != nil {
			return fmt.Errorf("failed to reset database: %w", err)
		}
	}

	if err := database.Migrate(ctx, db, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if cfg.SeedOnStart {
		if err := database.Seed(ctx, db, logger); err != nil {
			return fmt.Errorf("failed to seed database: %w", err)
		}
	}
	return nil
}

// loadSnapshot builds the in-memory snapshot from the configured source.
// A nil result means the snapshot routes serve an empty set.
func loadSnapshot(ctx context.Context, cfg *config.Config, upstream *source.Upstream, logger zerolog.Logger) (*source.Snapshot, error) {
	var (
		loader   source.Loader
		location string
	)

	switch cfg.Snapshot.Source {
	case config.SnapshotSourceNone:
		logger.Info().Msg("snapshot disabled")
		return nil, nil

	case config.SnapshotSourceFile:
		loader = source.NewFileLoader(logger)
		location = cfg.Snapshot.Path

	case config.SnapshotSourceS3:
		fileLoader := source.NewFileLoader(logger)
		s3Loader, err := source.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			s3Loader = nil
		}
		loader = source.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Key, logger)
		location = cfg.Snapshot.Path

	case config.SnapshotSourceUpstream:
		loader = source.NewUpstreamLoader(upstream, logger)
		location = cfg.Upstream.ElectronicsURL
	}

	records, err := loader.Load(ctx, location)
	if err != nil {
		return nil, err
	}

	snapshot := source.NewSnapshot(records)
	logger.Info().
		Str("source", cfg.Snapshot.Source).
		Int("records", snapshot.Len()).
		Msg("snapshot ready")
	return snapshot, nil
}
