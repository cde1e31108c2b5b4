package source

import (
	"context"
	"fmt"
	"time"

	"github.com/Tent9481/product-apis/internal/catalog"
	"github.com/Tent9481/product-apis/internal/model"
)

// RowLister returns every product joined with its brand.
type RowLister interface {
	ListWithBrands(ctx context.Context) ([]model.ProductWithBrand, error)
}

// Relational enriches joined database rows in process.
type Relational struct {
	rows RowLister
	now  Clock
}

// NewRelational creates a relational source. A nil clock uses time.Now.
func NewRelational(rows RowLister, now Clock) *Relational {
	if now == nil {
		now = time.Now
	}
	return &Relational{rows: rows, now: now}
}

// Products runs the join query once and maps each row to the canonical shape.
func (r *Relational) Products(ctx context.Context) ([]model.CatalogProduct, error) {
	rows, err := r.rows.ListWithBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	now := r.now()
	out := make([]model.CatalogProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.NormalizeRow(row, now))
	}
	return out, nil
}
