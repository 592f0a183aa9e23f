package mocks

import (
	"context"

	"github.com/DRSN-tech/pricing-api/internal/usecase"
	"github.com/stretchr/testify/mock"
)

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) GetProducts(ctx context.Context) ([]usecase.ProductSummary, bool, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]usecase.ProductSummary), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *MockCacheRepository) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheRepository) SetProducts(ctx context.Context, generation int64, products []usecase.ProductSummary) error {
	args := m.Called(ctx, generation, products)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteProducts(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
