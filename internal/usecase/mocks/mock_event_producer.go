package mocks

import (
	"context"

	"github.com/DRSN-tech/pricing-api/internal/usecase"
	"github.com/stretchr/testify/mock"
)

type MockEventProducer struct {
	mock.Mock
}

func (m *MockEventProducer) WritePriceChanged(ctx context.Context, event *usecase.PriceChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
