package converter

import (
	"fmt"

	"github.com/DRSN-tech/pricing-api/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToHistoryModels(entity *domain.Product) []PriceHistoryModel
	ToEntity(model *ProductModel, history []PriceHistoryModel) (*domain.Product, error)
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Price:       domain.FormatMoney(entity.Price),
		LastUpdated: entity.LastUpdated.UTC(),
	}
}

func (c *ProductConverterImpl) ToHistoryModels(entity *domain.Product) []PriceHistoryModel {
	models := make([]PriceHistoryModel, 0, len(entity.PriceHistory))
	for _, h := range entity.PriceHistory {
		models = append(models, PriceHistoryModel{
			ProductID:  entity.ID,
			Price:      domain.FormatMoney(h.Price),
			RecordedAt: h.Date.UTC(),
		})
	}

	return models
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel, history []PriceHistoryModel) (*domain.Product, error) {
	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, fmt.Errorf("product %d: invalid price %q: %w", model.ID, model.Price, err)
	}

	product := domain.NewProduct(model.ID, model.Name, price, model.LastUpdated.UTC())
	for _, h := range history {
		hPrice, err := decimal.NewFromString(h.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d: invalid history price %q: %w", model.ID, h.Price, err)
		}
		product.PriceHistory = append(product.PriceHistory, domain.NewPriceHistory(hPrice, h.RecordedAt.UTC()))
	}

	return product, nil
}
