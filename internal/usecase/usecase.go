package usecase

import "context"

// ProductUC — операции ценообразования, доступные транспортному слою.
type ProductUC interface {
	ListProducts(ctx context.Context) ([]ProductSummary, error)
	GetPriceHistory(ctx context.Context, id int64) (*ProductHistoryView, error)
	ApplyDiscount(ctx context.Context, id int64, req *DiscountReq) (*DiscountOutcome, error)
	UpdatePrice(ctx context.Context, id int64, req *UpdatePriceReq) (*UpdatePriceOutcome, error)
}
