package usecase

import (
	"context"

	"github.com/DRSN-tech/pricing-api/internal/domain"
)

// ProductRepository владеет каноническими экземплярами Product.
// GetByID возвращает (nil, nil), если продукта нет.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Save(ctx context.Context, product *domain.Product) error
}

// CacheRepository кэширует список продуктов. found=false означает промах.
// DeleteProducts увеличивает поколение. SetProducts ничего не пишет, если поколение
// изменилось после чтения Generation.
type CacheRepository interface {
	GetProducts(ctx context.Context) (products []ProductSummary, found bool, err error)
	Generation(ctx context.Context) (int64, error)
	SetProducts(ctx context.Context, generation int64, products []ProductSummary) error
	DeleteProducts(ctx context.Context) error
}
