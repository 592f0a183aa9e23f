package converter

import (
	"fmt"

	"github.com/DRSN-tech/pricing-api/internal/domain"
	"github.com/shopspring/decimal"
)

type ProductObjectConverter interface {
	ToObjectModel(entity *domain.Product) *ProductObjectModel
	ToEntity(model *ProductObjectModel) (*domain.Product, error)
}

type ProductObjectConverterImpl struct{}

func NewProductObjectConverterImpl() *ProductObjectConverterImpl {
	return &ProductObjectConverterImpl{}
}

func (c *ProductObjectConverterImpl) ToObjectModel(entity *domain.Product) *ProductObjectModel {
	history := make([]PriceHistoryObject, 0, len(entity.PriceHistory))
	for _, h := range entity.PriceHistory {
		history = append(history, PriceHistoryObject{
			Price: domain.FormatMoney(h.Price),
			Date:  h.Date.UTC(),
		})
	}

	return &ProductObjectModel{
		ID:           entity.ID,
		Name:         entity.Name,
		Price:        domain.FormatMoney(entity.Price),
		LastUpdated:  entity.LastUpdated.UTC(),
		PriceHistory: history,
	}
}

func (c *ProductObjectConverterImpl) ToEntity(model *ProductObjectModel) (*domain.Product, error) {
	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, fmt.Errorf("product %d: invalid price %q: %w", model.ID, model.Price, err)
	}

	product := domain.NewProduct(model.ID, model.Name, price, model.LastUpdated.UTC())
	for _, h := range model.PriceHistory {
		hPrice, err := decimal.NewFromString(h.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d: invalid history price %q: %w", model.ID, h.Price, err)
		}
		product.PriceHistory = append(product.PriceHistory, domain.NewPriceHistory(hPrice, h.Date.UTC()))
	}

	return product, nil
}
