package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/DRSN-tech/pricing-api/internal/cfg"
	"github.com/DRSN-tech/pricing-api/internal/repository/redis/converter"
	"github.com/DRSN-tech/pricing-api/internal/usecase"
	"github.com/DRSN-tech/pricing-api/pkg/clients"
	"github.com/DRSN-tech/pricing-api/pkg/e"
	"github.com/DRSN-tech/pricing-api/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const (
	// productsListKey — ключ, под которым лежит весь список продуктов.
	productsListKey = "products:list"
	// productsGenKey — счётчик поколений списка, растёт при каждом сбросе.
	productsGenKey = "products:list:gen"
)

// CacheRepo кэширует список продуктов целиком. Любое изменение цены сбрасывает ключ
// и увеличивает поколение, поэтому список, прочитанный до сброса, в кэш не попадёт.
var errStaleGeneration = errors.New("products list generation changed")

type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductSummaryConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductSummaryConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProducts возвращает закэшированный список. Повреждённая запись удаляется и считается промахом.
func (c *CacheRepo) GetProducts(ctx context.Context) ([]usecase.ProductSummary, bool, error) {
	data, err := c.client.Client.Get(ctx, productsListKey).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, false, nil // cache miss
		}
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.ProductSummaryRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		c.drop(ctx)
		return nil, false, nil
	}

	products, err := c.conv.ToArrUseCase(models)
	if err != nil {
		c.logger.Warnf("Cached products are invalid: %v", e.Wrap(whereami.WhereAmI(), err))
		c.drop(ctx)
		return nil, false, nil
	}

	return products, true, nil
}

// Generation возвращает текущее поколение списка. Отсутствующий счётчик означает 0.
func (c *CacheRepo) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Client.Get(ctx, productsGenKey).Int64()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return 0, nil
		}
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return gen, nil
}

// SetProducts кэширует список с TTL из конфигурации, только если поколение всё ещё равно generation.
// Устаревший список молча отбрасывается.
func (c *CacheRepo) SetProducts(ctx context.Context, generation int64, products []usecase.ProductSummary) error {
	data, err := json.Marshal(c.conv.ToArrRedisModel(products))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	err = c.client.Client.Watch(ctx, func(tx *r.Tx) error {
		current, err := tx.Get(ctx, productsGenKey).Int64()
		if err != nil && !errors.Is(err, r.Nil) {
			return err
		}

		if current != generation {
			return errStaleGeneration
		}

		_, err = tx.TxPipelined(ctx, func(pipe r.Pipeliner) error {
			pipe.Set(ctx, productsListKey, data, c.cfg.ProductTTL)
			return nil
		})
		return err
	}, productsGenKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errStaleGeneration), errors.Is(err, r.TxFailedErr):
		c.logger.Debugf("Skip caching stale products list (generation %d)", generation)
		return nil
	default:
		return e.Wrap(whereami.WhereAmI(), err)
	}
}

// DeleteProducts сбрасывает закэшированный список и увеличивает поколение.
func (c *CacheRepo) DeleteProducts(ctx context.Context) error {
	_, err := c.client.Client.TxPipelined(ctx, func(pipe r.Pipeliner) error {
		pipe.Incr(ctx, productsGenKey)
		pipe.Del(ctx, productsListKey)
		return nil
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CacheRepo) drop(ctx context.Context) {
	if err := c.client.Client.Del(ctx, productsListKey).Err(); err != nil {
		c.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
}
