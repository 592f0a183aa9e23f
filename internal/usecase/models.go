package usecase

import (
	"time"

	"github.com/shopspring/decimal"
)

// REQUESTS

// DiscountReq — запрос на применение скидки. nil означает отсутствующее тело запроса.
type DiscountReq struct {
	DiscountPercentage decimal.Decimal
}

// UpdatePriceReq — запрос на установку новой цены. nil означает отсутствующее тело запроса.
type UpdatePriceReq struct {
	NewPrice decimal.Decimal
}

// RESPONSES

// ProductSummary — краткая информация о продукте для списка.
type ProductSummary struct {
	ID          int64
	Name        string
	Price       decimal.Decimal
	LastUpdated time.Time
}

// ProductHistoryView — продукт с полной историей цен.
type ProductHistoryView struct {
	ID           int64
	Name         string
	PriceHistory []PriceHistoryItem
}

type PriceHistoryItem struct {
	Price decimal.Decimal
	Date  time.Time
}

// DiscountOutcome — результат применения скидки.
type DiscountOutcome struct {
	ID              int64
	Name            string
	OriginalPrice   decimal.Decimal
	DiscountedPrice decimal.Decimal
}

// UpdatePriceOutcome — результат установки новой цены.
type UpdatePriceOutcome struct {
	ID          int64
	Name        string
	NewPrice    decimal.Decimal
	LastUpdated time.Time
}

// EVENTS

type PriceChangeReason string

const (
	ReasonDiscount    PriceChangeReason = "discount"
	ReasonPriceUpdate PriceChangeReason = "price_update"
)

// PriceChangedEvent публикуется после успешного сохранения новой цены.
type PriceChangedEvent struct {
	EventID   string
	ProductID int64
	OldPrice  decimal.Decimal
	NewPrice  decimal.Decimal
	Reason    PriceChangeReason
	ChangedAt time.Time
}

// MAPPERS

func NewDiscountReq(percentage decimal.Decimal) *DiscountReq {
	return &DiscountReq{DiscountPercentage: percentage}
}

func NewUpdatePriceReq(newPrice decimal.Decimal) *UpdatePriceReq {
	return &UpdatePriceReq{NewPrice: newPrice}
}

func NewDiscountOutcome(id int64, name string, originalPrice, discountedPrice decimal.Decimal) *DiscountOutcome {
	return &DiscountOutcome{
		ID:              id,
		Name:            name,
		OriginalPrice:   originalPrice,
		DiscountedPrice: discountedPrice,
	}
}

func NewUpdatePriceOutcome(id int64, name string, newPrice decimal.Decimal, lastUpdated time.Time) *UpdatePriceOutcome {
	return &UpdatePriceOutcome{
		ID:          id,
		Name:        name,
		NewPrice:    newPrice,
		LastUpdated: lastUpdated,
	}
}

func NewPriceChangedEvent(eventID string, productID int64, oldPrice, newPrice decimal.Decimal,
	reason PriceChangeReason, changedAt time.Time) *PriceChangedEvent {
	return &PriceChangedEvent{
		EventID:   eventID,
		ProductID: productID,
		OldPrice:  oldPrice,
		NewPrice:  newPrice,
		Reason:    reason,
		ChangedAt: changedAt,
	}
}
