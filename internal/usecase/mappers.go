package usecase

import "github.com/DRSN-tech/pricing-api/internal/domain"

// ToProductSummaries отображает продукты в краткие представления.
// Пустой или nil вход даёт пустой (не nil) слайс; nil-элементы пропускаются.
func ToProductSummaries(products []*domain.Product) []ProductSummary {
	result := make([]ProductSummary, 0, len(products))
	for _, product := range products {
		if product == nil {
			continue
		}
		result = append(result, ToProductSummary(product))
	}

	return result
}

func ToProductSummary(product *domain.Product) ProductSummary {
	return ProductSummary{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		LastUpdated: product.LastUpdated,
	}
}

// ToProductHistoryView отображает продукт вместе с полной историей цен.
func ToProductHistoryView(product *domain.Product) *ProductHistoryView {
	return &ProductHistoryView{
		ID:           product.ID,
		Name:         product.Name,
		PriceHistory: toPriceHistoryItems(product.PriceHistory),
	}
}

func toPriceHistoryItems(history []domain.PriceHistory) []PriceHistoryItem {
	result := make([]PriceHistoryItem, 0, len(history))
	for _, item := range history {
		result = append(result, PriceHistoryItem{
			Price: item.Price,
			Date:  item.Date,
		})
	}

	return result
}
