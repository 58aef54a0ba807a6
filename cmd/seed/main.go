// Command seed fills the database with the demo catalog. Running it twice is
// harmless; products are matched by name and never duplicated.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"stockroom/internal/config"
	"stockroom/internal/database"
	"stockroom/internal/repository"
	"stockroom/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	count := flag.Int("count", len(seed.Catalog), "number of products to seed")
	flag.Parse()

	_ = godotenv.Load()

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

	if err := database.EnsureSchema(ctx, pool, logger); err != nil {
		return err
	}

	productRepo := repository.NewProductRepository(pool, logger)
	seeder := seed.NewSeeder(productRepo, logger)

	created, err := seeder.Seed(ctx, *count)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d product(s) out of requested %d.\n", created, *count)
	return nil
}
