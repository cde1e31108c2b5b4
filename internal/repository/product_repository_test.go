package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Tent9481/product-apis/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductTestFixture(t *testing.T) (ProductRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewProductRepository(mock, zerolog.Nop()), mock
}

func strPtr(s string) *string { return &s }

func sampleRow() model.ProductWithBrand {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	released := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	rating := 4.7
	count := 1200
	year := 1938
	brandID := uuid.New()

	return model.ProductWithBrand{
		Product: model.Product{
			ID:              uuid.New(),
			BrandID:         brandID,
			ProductName:     "Galaxy S24",
			CategoryName:    "Smartphone",
			DescriptionText: strPtr("Latest Samsung flagship phone"),
			Price:           999.99,
			Currency:        "USD",
			Processor:       strPtr("Snapdragon 8 Gen 3"),
			Memory:          strPtr("12GB"),
			ReleaseDate:     &released,
			AverageRating:   &rating,
			RatingCount:     &count,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		Brand: model.Brand{
			ID:          brandID,
			Name:        "Samsung",
			YearFounded: &year,
			Address:     model.Address{Line: "123 Innovation Drive, Seoul, South Korea"},
		},
	}
}

func productColumns() []string {
	return []string{
		"id", "brand_id", "product_name", "category_name", "description_text",
		"price", "currency", "processor", "memory", "release_date",
		"average_rating", "rating_count", "created_at", "updated_at",
		"brand_id", "name", "year_founded",
		"address", "street", "city", "state", "postal_code", "country",
	}
}

func productRows(items ...model.ProductWithBrand) *pgxmock.Rows {
	rows := pgxmock.NewRows(productColumns())
	for _, p := range items {
		cols := addressToColumns(p.Brand.Address)
		rows.AddRow(
			p.ID, p.BrandID, p.ProductName, p.CategoryName, p.DescriptionText,
			p.Price, p.Currency, p.Processor, p.Memory, p.ReleaseDate,
			p.AverageRating, p.RatingCount, p.CreatedAt, p.UpdatedAt,
			p.Brand.ID, p.Brand.Name, p.Brand.YearFounded,
			cols.line, cols.street, cols.city, cols.state, cols.postalCode, cols.country,
		)
	}
	return rows
}

func TestProductRepository_ListWithBrands(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	row := sampleRow()
	mock.ExpectQuery(`SELECT .+ FROM products p JOIN brands b ON b\.id = p\.brand_id ORDER BY p\.created_at, p\.id`).
		WillReturnRows(productRows(row))

	products, err := repo.ListWithBrands(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, row.ID, products[0].ID)
	assert.Equal(t, "Samsung", products[0].Brand.Name)
	assert.Equal(t, "123 Innovation Drive, Seoul, South Korea", *products[0].Brand.Address.Format())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListWithBrands_Empty(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM products p`).WillReturnRows(productRows())

	products, err := repo.ListWithBrands(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestProductRepository_ListWithBrands_QueryError(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM products p`).WillReturnError(errors.New("connection reset"))

	products, err := repo.ListWithBrands(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query products")
	assert.Nil(t, products)
}

func TestProductRepository_ListPage(t *testing.T) {
	tests := []struct {
		name  string
		query model.OffsetQuery
		sql   string
		args  []any
	}{
		{
			name:  "First page without filters",
			query: model.OffsetQuery{Page: 1, Limit: 5},
			sql:   `FROM products p JOIN brands b ON b\.id = p\.brand_id ORDER BY p\.created_at, p\.id LIMIT 5 OFFSET 0`,
		},
		{
			name:  "Third page with brand and category",
			query: model.OffsetQuery{Page: 3, Limit: 2, Brand: "Samsung", Category: "Smartphone"},
			sql:   `WHERE b\.name = \$1 AND p\.category_name = \$2 ORDER BY p\.created_at, p\.id LIMIT 2 OFFSET 4`,
			args:  []any{"Samsung", "Smartphone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newProductTestFixture(t)
			defer mock.Close()

			expect := mock.ExpectQuery(tt.sql)
			if len(tt.args) > 0 {
				expect = expect.WithArgs(tt.args...)
			}
			expect.WillReturnRows(productRows(sampleRow()))

			products, err := repo.ListPage(context.Background(), tt.query)

			require.NoError(t, err)
			assert.Len(t, products, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProductRepository_GetByID(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	row := sampleRow()
	mock.ExpectQuery(`SELECT .+ FROM products p .+ WHERE p\.id = \$1`).
		WithArgs(row.ID).
		WillReturnRows(productRows(row))

	got, err := repo.GetByID(context.Background(), mock, row.ID)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, row.ProductName, got.ProductName)
	assert.Equal(t, *row.ReleaseDate, *got.ReleaseDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery(`WHERE p\.id = \$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	got, err := repo.GetByID(context.Background(), mock, id)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepository_Create(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	p := sampleRow().Product
	created := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO products`).
		WithArgs(
			p.ID, p.BrandID, p.ProductName, p.CategoryName, p.DescriptionText, p.Price, p.Currency,
			p.Processor, p.Memory, p.ReleaseDate, p.AverageRating, p.RatingCount,
		).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	err := repo.Create(context.Background(), mock, &p)

	require.NoError(t, err)
	assert.Equal(t, created, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	id := uuid.New()
	price := 899.0
	mock.ExpectExec(`UPDATE products SET price = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(price, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(context.Background(), mock, id, model.ProductChangeSet{Price: &price})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_SortedColumns(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	id := uuid.New()
	brandID := uuid.New()
	name := "Galaxy S24 Ultra"
	mock.ExpectExec(`UPDATE products SET brand_id = \$1, product_name = \$2, updated_at = NOW\(\) WHERE id = \$3`).
		WithArgs(brandID, name, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(context.Background(), mock, id, model.ProductChangeSet{BrandID: &brandID, ProductName: &name})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_WritesNullForClearedColumns(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec(`UPDATE products SET memory = \$1, processor = \$2, updated_at = NOW\(\) WHERE id = \$3`).
		WithArgs("16GB", nil, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Update(context.Background(), mock, id, model.ProductChangeSet{
		Memory:    model.NullableOf("16GB"),
		Processor: model.Null[string](),
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Update_NotFound(t *testing.T) {
	repo, mock := newProductTestFixture(t)
	defer mock.Close()

	price := 1.0
	mock.ExpectExec(`UPDATE products`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), mock, uuid.New(), model.ProductChangeSet{Price: &price})

	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestProductRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		expected bool
	}{
		{name: "Existing product", affected: 1, expected: true},
		{name: "Unknown product", affected: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newProductTestFixture(t)
			defer mock.Close()

			id := uuid.New()
			mock.ExpectExec(`DELETE FROM products WHERE id = \$1`).
				WithArgs(id).
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			deleted, err := repo.Delete(context.Background(), id)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, deleted)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
