package converter

import (
	"fmt"

	"github.com/DRSN-tech/pricing-api/internal/domain"
	"github.com/DRSN-tech/pricing-api/internal/usecase"
	"github.com/shopspring/decimal"
)

type ProductSummaryConverter interface {
	ToArrRedisModel(entities []usecase.ProductSummary) []ProductSummaryRedisModel
	ToArrUseCase(models []ProductSummaryRedisModel) ([]usecase.ProductSummary, error)
}

type ProductSummaryConverterImpl struct{}

func NewProductSummaryConverterImpl() *ProductSummaryConverterImpl {
	return &ProductSummaryConverterImpl{}
}

func (c *ProductSummaryConverterImpl) ToArrRedisModel(entities []usecase.ProductSummary) []ProductSummaryRedisModel {
	models := make([]ProductSummaryRedisModel, 0, len(entities))
	for _, entity := range entities {
		models = append(models, ProductSummaryRedisModel{
			ID:          entity.ID,
			Name:        entity.Name,
			Price:       domain.FormatMoney(entity.Price),
			LastUpdated: entity.LastUpdated,
		})
	}

	return models
}

func (c *ProductSummaryConverterImpl) ToArrUseCase(models []ProductSummaryRedisModel) ([]usecase.ProductSummary, error) {
	result := make([]usecase.ProductSummary, 0, len(models))
	for _, model := range models {
		price, err := decimal.NewFromString(model.Price)
		if err != nil {
			return nil, fmt.Errorf("cached product %d: invalid price %q: %w", model.ID, model.Price, err)
		}

		result = append(result, usecase.ProductSummary{
			ID:          model.ID,
			Name:        model.Name,
			Price:       price,
			LastUpdated: model.LastUpdated.UTC(),
		})
	}

	return result, nil
}
