package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Tent9481/product-apis/internal/catalog"
	"github.com/Tent9481/product-apis/internal/model"
	"github.com/Tent9481/product-apis/internal/repository"
	"github.com/Tent9481/product-apis/internal/source"
	"github.com/rs/zerolog"
)

// CatalogSources wires one source adapter to each list endpoint.
type CatalogSources struct {
	Electronics source.Source[model.FlatProduct]
	Snapshot    source.Source[model.FlatProduct]
	Merged      source.Source[model.CatalogProduct]
	Relational  source.Source[model.CatalogProduct]
}

// catalogService implements CatalogService.
type catalogService struct {
	sources     CatalogSources
	productRepo repository.ProductRepository
	now         func() time.Time
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service. A nil clock uses time.Now.
func NewCatalogService(
	sources CatalogSources,
	productRepo repository.ProductRepository,
	now func() time.Time,
	logger zerolog.Logger,
) CatalogService {
	if now == nil {
		now = time.Now
	}
	return &catalogService{
		sources:     sources,
		productRepo: productRepo,
		now:         now,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

func (s *catalogService) ListElectronics(ctx context.Context, q catalog.Query) ([]model.FlatProduct, error) {
	return list(ctx, s.logger, "electronics", s.sources.Electronics, q)
}

func (s *catalogService) ListSnapshot(ctx context.Context, q catalog.Query) ([]model.FlatProduct, error) {
	return list(ctx, s.logger, "snapshot", s.sources.Snapshot, q)
}

func (s *catalogService) ListMerged(ctx context.Context, q catalog.Query) ([]model.CatalogProduct, error) {
	return list(ctx, s.logger, "merged", s.sources.Merged, q)
}

func (s *catalogService) ListRelational(ctx context.Context, q catalog.Query) ([]model.CatalogProduct, error) {
	return list(ctx, s.logger, "relational", s.sources.Relational, q)
}

func (s *catalogService) ListPage(ctx context.Context, q model.OffsetQuery) ([]model.CatalogProduct, error) {
	rows, err := s.productRepo.ListPage(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).
			Int("page", q.Page).
			Int("limit", q.Limit).
			Msg("failed to list product page")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	now := s.now()
	out := make([]model.CatalogProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, catalog.NormalizeRow(row, now))
	}

	s.logger.Debug().
		Int("count", len(out)).
		Int("page", q.Page).
		Int("limit", q.Limit).
		Msg("retrieved product page")

	return out, nil
}

// list loads every record from src and runs the shared filter/paginate pipeline.
func list[T catalog.Record](ctx context.Context, logger zerolog.Logger, name string, src source.Source[T], q catalog.Query) ([]T, error) {
	if src == nil {
		return []T{}, nil
	}

	records, err := src.Products(ctx)
	if err != nil {
		logger.Error().Err(err).Str("source", name).Msg("failed to load products")
		return nil, fmt.Errorf("failed to load %s products: %w", name, err)
	}

	out := catalog.Run(records, q)

	logger.Debug().
		Str("source", name).
		Int("loaded", len(records)).
		Int("returned", len(out)).
		Msg("listed products")

	return out, nil
}
