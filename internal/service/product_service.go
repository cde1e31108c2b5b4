package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tent9481/product-apis/internal/catalog"
	"github.com/Tent9481/product-apis/internal/model"
	"github.com/Tent9481/product-apis/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	tx          repository.Transactor
	productRepo repository.ProductRepository
	brandRepo   repository.BrandRepository
	now         func() time.Time
	logger      zerolog.Logger
}

// NewProductService creates a new product service. A nil clock uses time.Now.
func NewProductService(
	tx repository.Transactor,
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	now func() time.Time,
	logger zerolog.Logger,
) ProductService {
	if now == nil {
		now = time.Now
	}
	return &productService{
		tx:          tx,
		productRepo: productRepo,
		brandRepo:   brandRepo,
		now:         now,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Create runs brand find-or-create and the product insert in one transaction.
func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.CatalogProduct, error) {
	if req == nil {
		return nil, model.ErrMissingFields
	}
	if err := validateRequest(req); err != nil {
		s.logger.Debug().Err(err).Msg("create request rejected")
		return nil, err
	}

	product := &model.Product{
		ID:              uuid.New(),
		ProductName:     req.ProductName,
		CategoryName:    req.CategoryName,
		DescriptionText: req.DescriptionText,
		Price:           *req.Price,
		Currency:        req.Currency,
		Processor:       req.Processor,
		Memory:          req.Memory,
		ReleaseDate:     parseDate(req.ReleaseDate),
		AverageRating:   req.AverageRating,
		RatingCount:     req.RatingCount,
	}

	var created *model.ProductWithBrand
	err := s.tx.WithTx(ctx, func(q repository.Querier) error {
		brand, err := s.brandRepo.FindOrCreate(ctx, q, brandFromInput(req.Brand))
		if err != nil {
			return err
		}
		product.BrandID = brand.ID

		if err := s.productRepo.Create(ctx, q, product); err != nil {
			return err
		}

		created, err = s.productRepo.GetByID(ctx, q, product.ID)
		if err != nil {
			return err
		}
		if created == nil {
			return fmt.Errorf("product %s missing after insert", product.ID)
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Str("product_name", req.ProductName).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("brand_id", product.BrandID.String()).
		Msg("product created")

	out := catalog.NormalizeRow(*created, s.now())
	return &out, nil
}

// Update merges the supplied fields into an existing product. A brand block
// with a name re-points the product at that brand, creating it if needed.
func (s *productService) Update(ctx context.Context, id string, req *model.UpdateProductRequest) (*model.CatalogProduct, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		s.logger.Debug().Str("product_id", id).Msg("malformed product id")
		return nil, model.ErrProductNotFound
	}
	if req == nil {
		req = &model.UpdateProductRequest{}
	}
	if err := validateRequest(req); err != nil {
		s.logger.Debug().Err(err).Msg("update request rejected")
		return nil, err
	}

	var updated *model.ProductWithBrand
	err = s.tx.WithTx(ctx, func(q repository.Querier) error {
		current, err := s.productRepo.GetByID(ctx, q, productID)
		if err != nil {
			return err
		}
		if current == nil {
			return model.ErrProductNotFound
		}

		changes := changeSetFrom(req)
		if req.Brand != nil {
			brand, err := s.brandRepo.FindOrCreate(ctx, q, brandFromInput(req.Brand))
			if err != nil {
				return err
			}
			if brand.ID != current.BrandID {
				changes.BrandID = &brand.ID
			}
		}

		if changes.IsEmpty() {
			updated = current
			return nil
		}

		if err := s.productRepo.Update(ctx, q, productID, changes); err != nil {
			return err
		}

		updated, err = s.productRepo.GetByID(ctx, q, productID)
		if err != nil {
			return err
		}
		if updated == nil {
			return model.ErrProductNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			s.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, model.ErrProductNotFound
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("product updated")

	out := catalog.NormalizeRow(*updated, s.now())
	return &out, nil
}

// Delete removes a product. Its brand is left in place.
func (s *productService) Delete(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		s.logger.Debug().Str("product_id", id).Msg("malformed product id")
		return model.ErrProductNotFound
	}

	deleted, err := s.productRepo.Delete(ctx, productID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

func brandFromInput(in *model.BrandInput) *model.Brand {
	b := &model.Brand{
		Name:        in.Name,
		YearFounded: in.YearFounded,
	}
	if in.Address != nil {
		b.Address = *in.Address
	}
	return b
}

func changeSetFrom(req *model.UpdateProductRequest) model.ProductChangeSet {
	return model.ProductChangeSet{
		ProductName:     req.ProductName,
		CategoryName:    req.CategoryName,
		DescriptionText: req.DescriptionText,
		Price:           req.Price,
		Currency:        req.Currency,
		Processor:       req.Processor,
		Memory:          req.Memory,
		ReleaseDate:     model.Nullable[time.Time]{Value: parseDate(req.ReleaseDate.Value), Set: req.ReleaseDate.Set},
		AverageRating:   req.AverageRating,
		RatingCount:     req.RatingCount,
	}
}

// parseDate reads an already validated YYYY-MM-DD string.
func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(model.DateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
