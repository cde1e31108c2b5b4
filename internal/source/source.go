// Package source supplies product records to the catalog pipeline. Each
// adapter hides where records come from: an external API, two external APIs
// joined by brand name, the relational store or an in-memory snapshot.
package source

import (
	"context"
	"time"

	"github.com/Tent9481/product-apis/internal/catalog"
	"github.com/Tent9481/product-apis/internal/model"
)

// Source produces the full record set for one list request.
type Source[T catalog.Record] interface {
	Products(ctx context.Context) ([]T, error)
}

// Fetcher retrieves a JSON array from a URL. *Upstream implements it.
type Fetcher interface {
	FetchArray(ctx context.Context, url string) ([]catalog.RawRecord, error)
}

// Clock returns the current time. company_age is derived from it.
type Clock func() time.Time

// Snapshot serves a fixed set of flat records loaded at startup. It is
// never mutated after construction, so concurrent readers are safe.
type Snapshot struct {
	records []model.FlatProduct
}

// NewSnapshot copies records into a read-only snapshot.
func NewSnapshot(records []model.FlatProduct) *Snapshot {
	cp := make([]model.FlatProduct, len(records))
	copy(cp, records)
	return &Snapshot{records: cp}
}

// Products returns the snapshot records. Callers must not modify the slice.
func (s *Snapshot) Products(ctx context.Context) ([]model.FlatProduct, error) {
	return s.records, nil
}

// Len returns the number of records held.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// normalizeFlat drops incomplete upstream records and reshapes the rest.
func normalizeFlat(raw []catalog.RawRecord) []model.FlatProduct {
	valid := catalog.Validate(raw)
	out := make([]model.FlatProduct, 0, len(valid))
	for _, r := range valid {
		out = append(out, catalog.NormalizeFlat(r))
	}
	return out
}
