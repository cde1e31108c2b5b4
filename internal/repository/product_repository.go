package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/Tent9481/product-apis/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var productWithBrandColumns = []string{
	"p.id", "p.brand_id", "p.product_name", "p.category_name", "p.description_text",
	"p.price::float8", "p.currency", "p.processor", "p.memory", "p.release_date",
	"p.average_rating", "p.rating_count", "p.created_at", "p.updated_at",
	"b.id", "b.name", "b.year_founded",
	"b.address", "b.street", "b.city", "b.state", "b.postal_code", "b.country",
}

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	db     DBTX
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(db DBTX, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func selectProducts() squirrel.SelectBuilder {
	return psql.Select(productWithBrandColumns...).
		From("products p").
		Join("brands b ON b.id = p.brand_id")
}

// ListWithBrands retrieves every product joined with its brand.
func (r *productRepository) ListWithBrands(ctx context.Context) ([]model.ProductWithBrand, error) {
	query, args, err := selectProducts().OrderBy("p.created_at", "p.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return r.collect(rows)
}

// ListPage retrieves a page of products, filtered in SQL.
func (r *productRepository) ListPage(ctx context.Context, q model.OffsetQuery) ([]model.ProductWithBrand, error) {
	builder := selectProducts()
	if q.Brand != "" {
		builder = builder.Where(squirrel.Eq{"b.name": q.Brand})
	}
	if q.Category != "" {
		builder = builder.Where(squirrel.Eq{"p.category_name": q.Category})
	}
	builder = builder.
		OrderBy("p.created_at", "p.id").
		Limit(uint64(q.Limit)).
		Offset(uint64(q.Offset()))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).
			Int("page", q.Page).
			Int("limit", q.Limit).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return r.collect(rows)
}

// GetByID retrieves a single product and its brand.
func (r *productRepository) GetByID(ctx context.Context, q Querier, id uuid.UUID) (*model.ProductWithBrand, error) {
	query, args, err := selectProducts().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build product query: %w", err)
	}

	p, err := scanProductWithBrand(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return p, nil
}

// Create inserts a product row.
func (r *productRepository) Create(ctx context.Context, q Querier, p *model.Product) error {
	query := `
		INSERT INTO products (
			id, brand_id, product_name, category_name, description_text, price, currency,
			processor, memory, release_date, average_rating, rating_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.ID, p.BrandID, p.ProductName, p.CategoryName, p.DescriptionText, p.Price, p.Currency,
		p.Processor, p.Memory, p.ReleaseDate, p.AverageRating, p.RatingCount,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", p.ID.String()).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	r.logger.Info().Str("product_id", p.ID.String()).Msg("product created")
	return nil
}

// Update writes only the columns present in the change set.
func (r *productRepository) Update(ctx context.Context, q Querier, id uuid.UUID, changes model.ProductChangeSet) error {
	query, args, err := psql.Update("products").
		SetMap(changes.ToMap()).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build product update: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

// Delete removes a product row.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *productRepository) collect(rows pgx.Rows) ([]model.ProductWithBrand, error) {
	defer rows.Close()

	products := []model.ProductWithBrand{}
	for rows.Next() {
		p, err := scanProductWithBrand(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func scanProductWithBrand(row pgx.Row) (*model.ProductWithBrand, error) {
	var p model.ProductWithBrand
	var addr addressColumns
	err := row.Scan(
		&p.ID, &p.BrandID, &p.ProductName, &p.CategoryName, &p.DescriptionText,
		&p.Price, &p.Currency, &p.Processor, &p.Memory, &p.ReleaseDate,
		&p.AverageRating, &p.RatingCount, &p.CreatedAt, &p.UpdatedAt,
		&p.Brand.ID, &p.Brand.Name, &p.Brand.YearFounded,
		&addr.line, &addr.street, &addr.city, &addr.state, &addr.postalCode, &addr.country,
	)
	if err != nil {
		return nil, err
	}
	p.Brand.Address = addr.toAddress()
	return &p, nil
}
