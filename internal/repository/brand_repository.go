package repository

import (
	"context"
	"fmt"

	"github.com/Tent9481/product-apis/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// brandRepository implements the BrandRepository interface using PostgreSQL.
type brandRepository struct {
	logger zerolog.Logger
}

// NewBrandRepository creates a new PostgreSQL-backed brand repository.
func NewBrandRepository(logger zerolog.Logger) BrandRepository {
	return &brandRepository{
		logger: logger.With().Str("repository", "brand").Logger(),
	}
}

// FindOrCreate relies on the unique index on brands.name: concurrent callers
// racing on a new name all end up with the single row that won the insert.
func (r *brandRepository) FindOrCreate(ctx context.Context, q Querier, b *model.Brand) (*model.Brand, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	cols := addressToColumns(b.Address)

	insert := `
		INSERT INTO brands (id, name, year_founded, address, street, city, state, postal_code, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (name) DO NOTHING
	`
	tag, err := q.Exec(ctx, insert,
		b.ID, b.Name, b.YearFounded,
		cols.line, cols.street, cols.city, cols.state, cols.postalCode, cols.country,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("brand", b.Name).Msg("failed to insert brand")
		return nil, fmt.Errorf("failed to insert brand: %w", err)
	}
	if tag.RowsAffected() == 1 {
		r.logger.Info().Str("brand", b.Name).Str("brand_id", b.ID.String()).Msg("brand created")
	}

	query := `
		SELECT id, name, year_founded, address, street, city, state, postal_code, country
		FROM brands
		WHERE name = $1
	`

	var found model.Brand
	var stored addressColumns
	err = q.QueryRow(ctx, query, b.Name).Scan(
		&found.ID, &found.Name, &found.YearFounded,
		&stored.line, &stored.street, &stored.city, &stored.state, &stored.postalCode, &stored.country,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("brand", b.Name).Msg("failed to query brand")
		return nil, fmt.Errorf("failed to query brand: %w", err)
	}
	found.Address = stored.toAddress()

	return &found, nil
}

// addressColumns is a brand address as stored: either a free-text line or
// structured parts.
type addressColumns struct {
	line       *string
	street     *string
	city       *string
	state      *string
	postalCode *string
	country    *string
}

func addressToColumns(a model.Address) addressColumns {
	if a.Structured {
		return addressColumns{
			street:     nullable(a.Street),
			city:       nullable(a.City),
			state:      nullable(a.State),
			postalCode: nullable(a.PostalCode),
			country:    nullable(a.Country),
		}
	}
	return addressColumns{line: nullable(a.Line)}
}

func (c addressColumns) toAddress() model.Address {
	if c.street != nil || c.city != nil || c.state != nil || c.postalCode != nil || c.country != nil {
		return model.Address{
			Street:     value(c.street),
			City:       value(c.city),
			State:      value(c.state),
			PostalCode: value(c.postalCode),
			Country:    value(c.country),
			Structured: true,
		}
	}
	return model.Address{Line: value(c.line)}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
