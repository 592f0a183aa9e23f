package mocks

import (
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockDiscountCalculator struct {
	mock.Mock
}

func (m *MockDiscountCalculator) Calculate(percentage decimal.Decimal, price decimal.Decimal) decimal.Decimal {
	args := m.Called(percentage, price)
	return args.Get(0).(decimal.Decimal)
}
