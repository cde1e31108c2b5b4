package handler

import (
	"context"

	"github.com/Tent9481/product-apis/internal/catalog"
	"github.com/Tent9481/product-apis/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListElectronics(ctx context.Context, q catalog.Query) ([]model.FlatProduct, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FlatProduct), args.Error(1)
}

func (m *MockCatalogService) ListSnapshot(ctx context.Context, q catalog.Query) ([]model.FlatProduct, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FlatProduct), args.Error(1)
}

func (m *MockCatalogService) ListMerged(ctx context.Context, q catalog.Query) ([]model.CatalogProduct, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CatalogProduct), args.Error(1)
}

func (m *MockCatalogService) ListRelational(ctx context.Context, q catalog.Query) ([]model.CatalogProduct, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CatalogProduct), args.Error(1)
}

func (m *MockCatalogService) ListPage(ctx context.Context, q model.OffsetQuery) ([]model.CatalogProduct, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CatalogProduct), args.Error(1)
}

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.CatalogProduct, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CatalogProduct), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, req *model.UpdateProductRequest) (*model.CatalogProduct, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CatalogProduct), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }
