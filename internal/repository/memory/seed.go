package memory

import (
	"time"

	"github.com/DRSN-tech/pricing-api/internal/domain"
	"github.com/shopspring/decimal"
)

// SeedProducts — начальный набор продуктов для локального запуска.
func SeedProducts() []*domain.Product {
	productA := domain.NewProduct(1, "Product A", decimal.RequireFromString("100.00"),
		time.Date(2024, 9, 26, 12, 34, 56, 0, time.UTC))
	productA.PriceHistory = []domain.PriceHistory{
		domain.NewPriceHistory(decimal.RequireFromString("120.00"), time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)),
		domain.NewPriceHistory(decimal.RequireFromString("110.00"), time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)),
		domain.NewPriceHistory(decimal.RequireFromString("100.00"), time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC)),
	}

	productB := domain.NewProduct(2, "Product B", decimal.RequireFromString("200.00"),
		time.Date(2024, 9, 25, 10, 12, 34, 0, time.UTC))

	return []*domain.Product{productA, productB}
}
