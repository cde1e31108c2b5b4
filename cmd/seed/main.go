package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Tent9481/product-apis/internal/config"
	"github.com/Tent9481/product-apis/internal/database"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	reset := flag.Bool("reset", false, "drop all tables before migrating")
	seed := flag.Bool("seed", true, "insert the sample brand and product")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger)

	ctx := context.Background()
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if *reset {
		if err := database.Reset(ctx, pool, logger); err != nil {
			return err
		}
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return err
	}

	if *seed {
		if err := database.Seed(ctx, pool, logger); err != nil {
			return err
		}
	}

	logger.Info().Bool("reset", *reset).Bool("seed", *seed).Msg("database ready")
	return nil
}
