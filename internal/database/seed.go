package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SeedBrand and SeedProduct name the bootstrap rows written by Seed.
const (
	SeedBrand   = "Samsung"
	SeedProduct = "Galaxy S24"
)

// Seed inserts the bootstrap brand and product. Running it again leaves the
// existing rows untouched.
func Seed(ctx context.Context, db Conn, logger zerolog.Logger) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO brands (id, name, year_founded, address)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING
	`, uuid.New(), SeedBrand, 1938, "123 Innovation Drive, Seoul, South Korea")
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to seed brand: %w", err)
	}

	var brandID uuid.UUID
	if err := tx.QueryRow(ctx, `SELECT id FROM brands WHERE name = $1`, SeedBrand).Scan(&brandID); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to look up seed brand: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO products (
			id, brand_id, product_name, category_name, description_text, price, currency,
			processor, memory, release_date, average_rating, rating_count
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		WHERE NOT EXISTS (
			SELECT 1 FROM products WHERE brand_id = $2 AND product_name = $3
		)
	`,
		uuid.New(), brandID, SeedProduct, "Smartphone", "Latest Samsung flagship phone", 999.99, "USD",
		"Snapdragon 8 Gen 3", "12GB", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 4.7, 1200,
	)
	if err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to seed product: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	logger.Info().
		Str("brand_id", brandID.String()).
		Int64("products_inserted", tag.RowsAffected()).
		Msg("database seeded")
	return nil
}
