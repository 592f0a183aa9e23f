package http

import (
	"bytes"
	"fmt"
	"time"

	"github.com/DRSN-tech/pricing-api/internal/domain"
	"github.com/DRSN-tech/pricing-api/internal/usecase"
	"github.com/shopspring/decimal"
)

// Amount сериализуется JSON-числом ровно с двумя знаками после запятой (90.00, а не 90).
type Amount decimal.Decimal

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(domain.FormatMoney(decimal.Decimal(a))), nil
}

// Number принимает только JSON-число. Строки ("50") и null отклоняются,
// отсутствующее поле остаётся нулём.
type Number decimal.Decimal

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == '"' || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("expected JSON number, got %s", data)
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return err
	}

	*n = Number(d)
	return nil
}

// REQUESTS

type DiscountRequest struct {
	DiscountPercentage Number `json:"discountPercentage" swaggertype:"number" example:"10"`
}

type UpdatePriceRequest struct {
	NewPrice Number `json:"newPrice" swaggertype:"number" example:"150.00"`
}

// RESPONSES

type ProductSummaryResponse struct {
	ID          int64     `json:"id" example:"1"`
	Name        string    `json:"name" example:"Product A"`
	Price       Amount    `json:"price" swaggertype:"number" example:"100.00"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type PriceHistoryResponse struct {
	Price Amount    `json:"price" swaggertype:"number" example:"120.00"`
	Date  time.Time `json:"date"`
}

type ProductHistoryResponse struct {
	ID           int64                  `json:"id" example:"1"`
	Name         string                 `json:"name" example:"Product A"`
	PriceHistory []PriceHistoryResponse `json:"priceHistory"`
}

type DiscountResponse struct {
	ID              int64  `json:"id" example:"1"`
	Name            string `json:"name" example:"Product A"`
	OriginalPrice   Amount `json:"originalPrice" swaggertype:"number" example:"100.00"`
	DiscountedPrice Amount `json:"discountedPrice" swaggertype:"number" example:"90.00"`
}

type UpdatePriceResponse struct {
	ID          int64     `json:"id" example:"1"`
	Name        string    `json:"name" example:"Product A"`
	NewPrice    Amount    `json:"newPrice" swaggertype:"number" example:"150.00"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// MAPPERS

// toDiscountReq сохраняет nil: отсутствующее тело проверяется в usecase.
func (r *DiscountRequest) toDiscountReq() *usecase.DiscountReq {
	if r == nil {
		return nil
	}
	return usecase.NewDiscountReq(decimal.Decimal(r.DiscountPercentage))
}

func (r *UpdatePriceRequest) toUpdatePriceReq() *usecase.UpdatePriceReq {
	if r == nil {
		return nil
	}
	return usecase.NewUpdatePriceReq(decimal.Decimal(r.NewPrice))
}

func toProductSummaryResponses(products []usecase.ProductSummary) []ProductSummaryResponse {
	result := make([]ProductSummaryResponse, 0, len(products))
	for _, p := range products {
		result = append(result, ProductSummaryResponse{
			ID:          p.ID,
			Name:        p.Name,
			Price:       Amount(p.Price),
			LastUpdated: p.LastUpdated,
		})
	}

	return result
}

func toProductHistoryResponse(view *usecase.ProductHistoryView) *ProductHistoryResponse {
	history := make([]PriceHistoryResponse, 0, len(view.PriceHistory))
	for _, h := range view.PriceHistory {
		history = append(history, PriceHistoryResponse{
			Price: Amount(h.Price),
			Date:  h.Date,
		})
	}

	return &ProductHistoryResponse{
		ID:           view.ID,
		Name:         view.Name,
		PriceHistory: history,
	}
}

func toDiscountResponse(outcome *usecase.DiscountOutcome) *DiscountResponse {
	return &DiscountResponse{
		ID:              outcome.ID,
		Name:            outcome.Name,
		OriginalPrice:   Amount(outcome.OriginalPrice),
		DiscountedPrice: Amount(outcome.DiscountedPrice),
	}
}

func toUpdatePriceResponse(outcome *usecase.UpdatePriceOutcome) *UpdatePriceResponse {
	return &UpdatePriceResponse{
		ID:          outcome.ID,
		Name:        outcome.Name,
		NewPrice:    Amount(outcome.NewPrice),
		LastUpdated: outcome.LastUpdated,
	}
}
