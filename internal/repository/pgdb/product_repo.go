package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/pricing-api/internal/domain"
	"github.com/DRSN-tech/pricing-api/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/pricing-api/pkg/e"
	"github.com/DRSN-tech/pricing-api/pkg/logger"
	"github.com/DRSN-tech/pricing-api/pkg/tr"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий продуктов поверх PostgreSQL.
// История цен хранится в price_history и только дописывается.
type ProductRepo struct {
	pool   *pgxpool.Pool
	conv   converter.ProductConverter
	logger logger.Logger
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter, logger logger.Logger) *ProductRepo {
	return &ProductRepo{
		pool:   pool,
		conv:   conv,
		logger: logger,
	}
}

// GetAll возвращает все продукты с историей цен, упорядоченные по id.
func (p *ProductRepo) GetAll(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, price::text, last_updated
		FROM products
		ORDER BY id
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToStructByPos[converter.ProductModel])
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	history, err := p.loadHistory(ctx, p.pool, nil)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make([]*domain.Product, 0, len(models))
	for i := range models {
		product, err := p.conv.ToEntity(&models[i], history[models[i].ID])
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, product)
	}

	return result, nil
}

// GetByID возвращает продукт или (nil, nil), если записи нет.
func (p *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, price::text, last_updated
		FROM products
		WHERE id = $1
	`

	var model converter.ProductModel
	err := p.pool.QueryRow(ctx, query, id).Scan(&model.ID, &model.Name, &model.Price, &model.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	history, err := p.loadHistory(ctx, p.pool, &id)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	product, err := p.conv.ToEntity(&model, history[id])
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return product, nil
}

// Save в одной транзакции обновляет продукт и дописывает новые записи истории.
// Записи, уже лежащие в базе, не переписываются.
func (p *ProductRepo) Save(ctx context.Context, product *domain.Product) (err error) {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.pool)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				p.logger.Errorf(rbErr, "failed to rollback product %d save", product.ID)
			}
		}
	}()

	ctx = tr.WithTx(ctx, tx.Transaction())

	if err = p.upsertProduct(ctx, product); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err = p.appendHistory(ctx, product); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (p *ProductRepo) upsertProduct(ctx context.Context, product *domain.Product) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	// VALUES ($1, $2, $3, $4) id, name, price, last_updated
	query := `
		INSERT INTO products (id, name, price, last_updated)
		VALUES ($1, $2, $3::numeric, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price,
			last_updated = EXCLUDED.last_updated
	`

	model := p.conv.ToModel(product)
	if _, err := tx.Exec(ctx, query, model.ID, model.Name, model.Price, model.LastUpdated); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// appendHistory вставляет только хвост истории, которого ещё нет в базе.
func (p *ProductRepo) appendHistory(ctx context.Context, product *domain.Product) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	var stored int
	countQuery := `SELECT COUNT(*) FROM price_history WHERE product_id = $1`
	if err := tx.QueryRow(ctx, countQuery, product.ID).Scan(&stored); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	models := p.conv.ToHistoryModels(product)
	if stored >= len(models) {
		return nil
	}

	batch := &pgx.Batch{}
	for _, m := range models[stored:] {
		batch.Queue(
			`INSERT INTO price_history (product_id, price, recorded_at) VALUES ($1, $2::numeric, $3)`,
			m.ProductID, m.Price, m.RecordedAt,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	p.logger.Debugf("appended %d price history rows for product %d", len(models)-stored, product.ID)

	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// loadHistory читает историю цен, сгруппированную по product_id. productID == nil читает всю таблицу.
func (p *ProductRepo) loadHistory(ctx context.Context, q querier, productID *int64) (map[int64][]converter.PriceHistoryModel, error) {
	query := `
		SELECT id, product_id, price::text, recorded_at
		FROM price_history
		WHERE $1::bigint IS NULL OR product_id = $1
		ORDER BY product_id, id
	`

	rows, err := q.Query(ctx, query, productID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	models, err := pgx.CollectRows(rows, pgx.RowToStructByPos[converter.PriceHistoryModel])
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make(map[int64][]converter.PriceHistoryModel)
	for _, m := range models {
		result[m.ProductID] = append(result[m.ProductID], m)
	}

	return result, nil
}
