package usecase

import (
	"fmt"

	"github.com/DRSN-tech/pricing-api/pkg/e"
	"github.com/shopspring/decimal"
)

const (
	minNewPrice           = 0
	minDiscountPercentage = 0
	maxDiscountPercentage = 100
)

var (
	minNewPriceDec           = decimal.NewFromInt(minNewPrice)
	minDiscountPercentageDec = decimal.NewFromInt(minDiscountPercentage)
	maxDiscountPercentageDec = decimal.NewFromInt(maxDiscountPercentage)
)

// ValidateUpdatePriceReq проверяет запрос на установку цены.
// Верхней границы цены нет.
func ValidateUpdatePriceReq(req *UpdatePriceReq) error {
	if req == nil {
		return e.NewValidationError("Update price request cannot be null.")
	}

	if req.NewPrice.LessThan(minNewPriceDec) {
		return e.NewValidationError("New price cannot be negative.")
	}

	return nil
}

// ValidateDiscountReq проверяет, что процент скидки лежит в [0, 100] включительно.
func ValidateDiscountReq(req *DiscountReq) error {
	if req == nil {
		return e.NewValidationError("Discount request cannot be null.")
	}

	if req.DiscountPercentage.LessThan(minDiscountPercentageDec) ||
		req.DiscountPercentage.GreaterThan(maxDiscountPercentageDec) {
		return e.NewValidationError(fmt.Sprintf(
			"Discount percentage must be between %d and %d.", minDiscountPercentage, maxDiscountPercentage))
	}

	return nil
}
