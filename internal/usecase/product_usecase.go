package usecase

import (
	"context"
	"strconv"

	"github.com/DRSN-tech/pricing-api/internal/domain"
	"github.com/DRSN-tech/pricing-api/pkg/clock"
	"github.com/DRSN-tech/pricing-api/pkg/e"
	"github.com/DRSN-tech/pricing-api/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductUseCase реализует сценарии чтения и изменения цен продуктов.
// cacheRepo и producer необязательны (nil отключает кэш и публикацию событий).
type ProductUseCase struct {
	productRepo ProductRepository
	calculator  DiscountCalculator
	cacheRepo   CacheRepository
	producer    EventProducer
	clock       clock.Clock
	logger      logger.Logger
}

func NewProductUC(
	productRepo ProductRepository,
	calculator DiscountCalculator,
	cacheRepo CacheRepository,
	producer EventProducer,
	clock clock.Clock,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		calculator:  calculator,
		cacheRepo:   cacheRepo,
		producer:    producer,
		clock:       clock,
		logger:      logger,
	}
}

// ListProducts возвращает краткую информацию обо всех продуктах.
func (p *ProductUseCase) ListProducts(ctx context.Context) ([]ProductSummary, error) {
	const op = "ProductUseCase.ListProducts"

	// Поколение читается до репозитория: если между чтением и записью кэш сбросят,
	// прочитанный список окажется устаревшим и не будет записан.
	generation, cacheable := int64(0), false
	if p.cacheRepo != nil {
		cached, found, err := p.cacheRepo.GetProducts(ctx)
		if err != nil {
			p.logger.Warnf("Failed to read products from cache: %v", e.Wrap(op, err))
		} else if found {
			return cached, nil
		}

		if generation, err = p.cacheRepo.Generation(ctx); err != nil {
			p.logger.Warnf("Failed to read products cache generation: %v", e.Wrap(op, err))
		} else {
			cacheable = true
		}
	}

	products, err := p.productRepo.GetAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := ToProductSummaries(products)

	if cacheable {
		if err := p.cacheRepo.SetProducts(ctx, generation, result); err != nil {
			p.logger.Warnf("Failed to cache products: %v", e.Wrap(op, err))
		}
	}

	return result, nil
}

// GetPriceHistory возвращает продукт с полной историей цен.
func (p *ProductUseCase) GetPriceHistory(ctx context.Context, id int64) (*ProductHistoryView, error) {
	const op = "ProductUseCase.GetPriceHistory"

	product, err := p.getProduct(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return ToProductHistoryView(product), nil
}

// ApplyDiscount применяет процентную скидку к текущей цене продукта.
// Существование продукта проверяется раньше валидации запроса.
func (p *ProductUseCase) ApplyDiscount(ctx context.Context, id int64, req *DiscountReq) (*DiscountOutcome, error) {
	const op = "ProductUseCase.ApplyDiscount"

	product, err := p.getProduct(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := ValidateDiscountReq(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	originalPrice := product.Price
	discountedPrice := p.calculator.Calculate(req.DiscountPercentage, originalPrice)

	now := p.clock.Now()
	product.ChangePrice(discountedPrice, now)

	if err := p.productRepo.Save(ctx, product); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.afterPriceChange(ctx, product, originalPrice, ReasonDiscount)

	return NewDiscountOutcome(product.ID, product.Name, originalPrice, discountedPrice), nil
}

// UpdatePrice устанавливает новую абсолютную цену, округлённую до двух знаков.
// Одинаковая цена всё равно пишется в историю.
func (p *ProductUseCase) UpdatePrice(ctx context.Context, id int64, req *UpdatePriceReq) (*UpdatePriceOutcome, error) {
	const op = "ProductUseCase.UpdatePrice"

	product, err := p.getProduct(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err := ValidateUpdatePriceReq(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	originalPrice := product.Price
	newPrice := domain.RoundMoney(req.NewPrice)

	now := p.clock.Now()
	product.ChangePrice(newPrice, now)

	if err := p.productRepo.Save(ctx, product); err != nil {
		return nil, e.Wrap(op, err)
	}

	p.afterPriceChange(ctx, product, originalPrice, ReasonPriceUpdate)

	return NewUpdatePriceOutcome(product.ID, product.Name, newPrice, product.LastUpdated), nil
}

// getProduct загружает продукт или возвращает NotFoundError.
func (p *ProductUseCase) getProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := p.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product == nil {
		return nil, e.NewNotFoundError(domain.ProductEntity, strconv.FormatInt(id, 10))
	}

	return product, nil
}

// afterPriceChange сбрасывает кэш списка и публикует событие. Ошибки только логируются:
// изменение уже сохранено.
func (p *ProductUseCase) afterPriceChange(ctx context.Context, product *domain.Product, oldPrice decimal.Decimal, reason PriceChangeReason) {
	const op = "ProductUseCase.afterPriceChange"

	if p.cacheRepo != nil {
		if err := p.cacheRepo.DeleteProducts(ctx); err != nil {
			p.logger.Warnf("Failed to invalidate products cache: %v", e.Wrap(op, err))
		}
	}

	if p.producer != nil {
		event := NewPriceChangedEvent(uuid.NewString(), product.ID, oldPrice, product.Price, reason, product.LastUpdated)
		if err := p.producer.WritePriceChanged(ctx, event); err != nil {
			p.logger.Warnf("Failed to publish price change event for product %d: %v", product.ID, e.Wrap(op, err))
		}
	}
}
