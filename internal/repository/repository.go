package repository

import (
	"context"

	"github.com/Tent9481/product-apis/internal/model"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product data access operations.
// Methods taking a Querier run on whatever connection or transaction the
// caller supplies.
type ProductRepository interface {
	// ListWithBrands returns every product joined with its brand, oldest first.
	ListWithBrands(ctx context.Context) ([]model.ProductWithBrand, error)

	// ListPage returns one page of products, optionally restricted to an exact
	// brand name and category.
	ListPage(ctx context.Context, query model.OffsetQuery) ([]model.ProductWithBrand, error)

	// GetByID returns nil, nil when the product does not exist.
	GetByID(ctx context.Context, q Querier, id uuid.UUID) (*model.ProductWithBrand, error)

	// Create inserts p and fills in its timestamps.
	Create(ctx context.Context, q Querier, p *model.Product) error

	// Update applies the change set. Returns model.ErrProductNotFound when no
	// row has the id.
	Update(ctx context.Context, q Querier, id uuid.UUID, changes model.ProductChangeSet) error

	// Delete removes the product and reports whether a row existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// BrandRepository defines the interface for brand data access operations.
type BrandRepository interface {
	// FindOrCreate returns the brand named b.Name, inserting b if no such
	// brand exists. An existing brand is returned unchanged.
	FindOrCreate(ctx context.Context, q Querier, b *model.Brand) (*model.Brand, error)
}
