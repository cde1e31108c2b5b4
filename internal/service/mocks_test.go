package service

import (
	"context"

	"github.com/Tent9481/product-apis/internal/catalog"
	"github.com/Tent9481/product-apis/internal/model"
	"github.com/Tent9481/product-apis/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListWithBrands(ctx context.Context) ([]model.ProductWithBrand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductWithBrand), args.Error(1)
}

func (m *MockProductRepository) ListPage(ctx context.Context, q model.OffsetQuery) ([]model.ProductWithBrand, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductWithBrand), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, q repository.Querier, id uuid.UUID) (*model.ProductWithBrand, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductWithBrand), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, q repository.Querier, p *model.Product) error {
	args := m.Called(ctx, q, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, q repository.Querier, id uuid.UUID, changes model.ProductChangeSet) error {
	args := m.Called(ctx, q, id, changes)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockBrandRepository is a mock implementation of BrandRepository.
type MockBrandRepository struct {
	mock.Mock
}

func (m *MockBrandRepository) FindOrCreate(ctx context.Context, q repository.Querier, b *model.Brand) (*model.Brand, error) {
	args := m.Called(ctx, q, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Brand), args.Error(1)
}

// passThroughTx runs fn directly with a nil Querier.
type passThroughTx struct{}

func (passThroughTx) WithTx(ctx context.Context, fn func(q repository.Querier) error) error {
	return fn(nil)
}

// MockSource is a mock record source.
type MockSource[T catalog.Record] struct {
	mock.Mock
}

func (m *MockSource[T]) Products(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}
