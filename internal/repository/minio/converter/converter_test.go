package converter

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DRSN-tech/pricing-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductObjectConverter_KeepsHistoryOrder(t *testing.T) {
	at := time.Date(2024, 9, 26, 12, 34, 56, 0, time.UTC)
	product := domain.NewProduct(1, "Product A", decimal.NewFromInt(100), at)
	product.PriceHistory = []domain.PriceHistory{
		domain.NewPriceHistory(decimal.NewFromInt(120), time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)),
		domain.NewPriceHistory(decimal.NewFromInt(110), time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)),
	}

	conv := NewProductObjectConverterImpl()

	data, err := json.Marshal(conv.ToObjectModel(product))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":"100.00"`)

	var model ProductObjectModel
	require.NoError(t, json.Unmarshal(data, &model))

	restored, err := conv.ToEntity(&model)
	require.NoError(t, err)
	assert.Equal(t, product.ID, restored.ID)
	assert.Equal(t, at, restored.LastUpdated)
	require.Len(t, restored.PriceHistory, 2)
	assert.True(t, restored.PriceHistory[0].Price.Equal(decimal.NewFromInt(120)))
	assert.True(t, restored.PriceHistory[1].Price.Equal(decimal.NewFromInt(110)))
}

func TestProductObjectConverter_InvalidPrice(t *testing.T) {
	conv := NewProductObjectConverterImpl()

	_, err := conv.ToEntity(&ProductObjectModel{ID: 3, Price: "1,5"})
	assert.Error(t, err)

	_, err = conv.ToEntity(&ProductObjectModel{
		ID:           3,
		Price:        "1.50",
		PriceHistory: []PriceHistoryObject{{Price: ""}},
	})
	assert.Error(t, err)
}
