package usecase

import (
	"github.com/DRSN-tech/pricing-api/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type DiscountCalculator interface {
	Calculate(percentage decimal.Decimal, price decimal.Decimal) decimal.Decimal
}

// DiscountedPriceCalculator считает цену со скидкой: round(price * (1 - percentage/100), 2).
// Процент не проверяется, это делает вызывающая сторона.
type DiscountedPriceCalculator struct{}

func NewDiscountedPriceCalculator() *DiscountedPriceCalculator {
	return &DiscountedPriceCalculator{}
}

func (c *DiscountedPriceCalculator) Calculate(percentage decimal.Decimal, price decimal.Decimal) decimal.Decimal {
	return CalculateDiscountedPrice(percentage, price)
}

func CalculateDiscountedPrice(percentage decimal.Decimal, price decimal.Decimal) decimal.Decimal {
	multiplier := decimal.NewFromInt(1).Sub(percentage.Div(hundred))
	return domain.RoundMoney(price.Mul(multiplier))
}
