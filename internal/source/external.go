package source

import (
	"context"
	"fmt"
	"time"

	"github.com/Tent9481/product-apis/internal/catalog"
	"github.com/Tent9481/product-apis/internal/model"
	"golang.org/x/sync/errgroup"
)

// External reads flat products from a single upstream array.
type External struct {
	fetcher Fetcher
	url     string
}

// NewExternal creates an external-array source.
func NewExternal(fetcher Fetcher, url string) *External {
	return &External{fetcher: fetcher, url: url}
}

// Products fetches, validates and reshapes the upstream records.
func (e *External) Products(ctx context.Context) ([]model.FlatProduct, error) {
	raw, err := e.fetcher.FetchArray(ctx, e.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch electronics: %w", err)
	}
	return normalizeFlat(raw), nil
}

// Merged joins upstream products with upstream brands by exact brand name.
type Merged struct {
	products *External
	brands   *External
	now      Clock
}

// NewMerged creates a dual-source merge adapter. Each side has its own
// fetcher so a failing brands API does not trip the products breaker. A nil
// clock uses time.Now.
func NewMerged(products, brands *External, now Clock) *Merged {
	if now == nil {
		now = time.Now
	}
	return &Merged{products: products, brands: brands, now: now}
}

// Products fetches both arrays concurrently and enriches every valid product
// whose brand resolves. Products with an unknown brand are dropped. If either
// fetch fails the whole call fails.
func (m *Merged) Products(ctx context.Context) ([]model.CatalogProduct, error) {
	var products, brands []catalog.RawRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = m.products.fetcher.FetchArray(gctx, m.products.url)
		if err != nil {
			return fmt.Errorf("failed to fetch electronics: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		brands, err = m.brands.fetcher.FetchArray(gctx, m.brands.url)
		if err != nil {
			return fmt.Errorf("failed to fetch brands: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	index := indexBrands(brands)
	now := m.now()

	out := make([]model.CatalogProduct, 0, len(products))
	for _, raw := range catalog.Validate(products) {
		name := catalog.NormalizeFlat(raw).BrandName
		if name == nil {
			continue
		}
		brand, ok := index[*name]
		if !ok {
			continue
		}
		out = append(out, catalog.NormalizeEnriched(raw, brand, now))
	}
	return out, nil
}

// indexBrands maps brand name to brand. The first record for a name wins.
func indexBrands(raw []catalog.RawRecord) map[string]model.Brand {
	index := make(map[string]model.Brand, len(raw))
	for _, r := range raw {
		b, ok := catalog.ParseBrand(r)
		if !ok {
			continue
		}
		if _, seen := index[b.Name]; !seen {
			index[b.Name] = b
		}
	}
	return index
}
