package service

import (
	"context"

	"github.com/Tent9481/product-apis/internal/catalog"
	"github.com/Tent9481/product-apis/internal/model"
)

// CatalogService serves the read-only list endpoints.
type CatalogService interface {
	// ListElectronics fetches the upstream electronics array and filters it.
	ListElectronics(ctx context.Context, q catalog.Query) ([]model.FlatProduct, error)

	// ListSnapshot filters the in-memory snapshot loaded at startup.
	ListSnapshot(ctx context.Context, q catalog.Query) ([]model.FlatProduct, error)

	// ListMerged joins upstream products with upstream brands by name.
	ListMerged(ctx context.Context, q catalog.Query) ([]model.CatalogProduct, error)

	// ListRelational reads every product from the database and filters in memory.
	ListRelational(ctx context.Context, q catalog.Query) ([]model.CatalogProduct, error)

	// ListPage pushes brand, category and paging down to the database.
	ListPage(ctx context.Context, q model.OffsetQuery) ([]model.CatalogProduct, error)
}

// ProductService defines the product write operations.
type ProductService interface {
	// Create finds or creates the brand by name and inserts the product.
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.CatalogProduct, error)

	// Update applies the supplied fields to an existing product.
	Update(ctx context.Context, id string, req *model.UpdateProductRequest) (*model.CatalogProduct, error)

	// Delete removes a product.
	Delete(ctx context.Context, id string) error
}
