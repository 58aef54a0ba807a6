// Package seed populates the database with a curated demo catalog.
package seed

import (
	"context"
	"fmt"
	"math/rand"

	"stockroom/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Price bounds for generated demo products.
var (
	minPrice = decimal.RequireFromString("2.50")
	maxPrice = decimal.RequireFromString("120.00")
)

// Seeder inserts catalog products idempotently by name.
type Seeder struct {
	products repository.ProductRepository
	logger   zerolog.Logger

	// randFloat is swappable in tests for deterministic prices.
	randFloat func() float64
}

// NewSeeder creates a seeder over the product repository.
func NewSeeder(products repository.ProductRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		products:  products,
		logger:    logger.With().Str("component", "seeder").Logger(),
		randFloat: rand.Float64,
	}
}

// Names returns the first count names, extending the catalog with generated
// placeholder names when count exceeds it.
func Names(count int) []string {
	names := make([]string, 0, count)
	names = append(names, Catalog...)
	for len(names) < count {
		names = append(names, fmt.Sprintf("Gourmet Treat #%d", len(names)+1))
	}
	return names[:count]
}

// randomPrice picks a price in [2.50, 120.00] rounded to two decimals.
func (s *Seeder) randomPrice() decimal.Decimal {
	span := maxPrice.Sub(minPrice)
	offset := span.Mul(decimal.NewFromFloat(s.randFloat()))
	return minPrice.Add(offset).Round(2)
}

// Seed inserts up to count products, skipping names that already exist.
// Returns how many rows were actually created.
func (s *Seeder) Seed(ctx context.Context, count int) (int, error) {
	if count < 0 {
		count = 0
	}

	created := 0
	for _, name := range Names(count) {
		wasCreated, err := s.products.CreateIfAbsent(ctx, name, s.randomPrice())
		if err != nil {
			return created, fmt.Errorf("failed to seed %q: %w", name, err)
		}
		if wasCreated {
			created++
		}
	}

	s.logger.Info().
		Int("created", created).
		Int("requested", count).
		Msg("seeding finished")

	return created, nil
}
