package database

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("catalog"),
		postgres.WithUsername("catalog"),
		postgres.WithPassword("catalog"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

func TestMigrateAndSeed_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	ctx := context.Background()
	logger := zerolog.Nop()

	pool, err := NewPoolFromURL(ctx, startPostgres(t), logger)
	require.NoError(t, err)
	defer pool.Close()

	// Both steps are idempotent.
	for i := 0; i < 2; i++ {
		require.NoError(t, Migrate(ctx, pool, logger))
		require.NoError(t, Seed(ctx, pool, logger))
	}

	var brands, products, versions int
	require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM brands").Scan(&brands))
	require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&products))
	require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, brands)
	assert.Equal(t, 1, products)
	assert.Equal(t, 1, versions)

	t.Run("Price must be non-negative", func(t *testing.T) {
		_, err := pool.Exec(ctx, `
			INSERT INTO products (id, brand_id, product_name, category_name, price, currency)
			SELECT gen_random_uuid(), id, 'Bad', 'Phone', -1, 'USD' FROM brands LIMIT 1
		`)
		assert.Error(t, err)
	})

	t.Run("Brand names are unique", func(t *testing.T) {
		_, err := pool.Exec(ctx, `INSERT INTO brands (id, name) VALUES (gen_random_uuid(), $1)`, SeedBrand)
		assert.Error(t, err)
	})

	t.Run("Pool stats are collected", func(t *testing.T) {
		ch := make(chan prometheus.Metric, 10)
		NewPoolStatsCollector(pool).Collect(ch)
		close(ch)
		assert.Len(t, ch, 7)
	})

	t.Run("Reset drops everything", func(t *testing.T) {
		require.NoError(t, Reset(ctx, pool, logger))

		var exists bool
		require.NoError(t, pool.QueryRow(ctx, "SELECT to_regclass('public.brands') IS NOT NULL").Scan(&exists))
		assert.False(t, exists)
	})
}
