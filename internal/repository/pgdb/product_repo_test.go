package pgdb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/DRSN-tech/pricing-api/internal/domain"
	"github.com/DRSN-tech/pricing-api/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/pricing-api/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Интеграционный тест: нужен PostgreSQL с применёнными миграциями из db/migrations.
func newTestRepo(t *testing.T) *ProductRepo {
	t.Helper()

	dsn := os.Getenv("PRICING_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("PRICING_TEST_PG_DSN is not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewProductRepo(pool, converter.NewProductConverterImpl(), logger.NewNop())
}

func TestProductRepo_SaveAppendsHistory(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := time.Now().UnixNano()
	at := time.Now().UTC().Truncate(time.Second)

	product := domain.NewProduct(id, "Integration", decimal.NewFromInt(50), at)
	require.NoError(t, repo.Save(ctx, product))

	product.ChangePrice(decimal.RequireFromString("45.50"), at.Add(time.Minute))
	require.NoError(t, repo.Save(ctx, product))

	product.ChangePrice(decimal.RequireFromString("45.50"), at.Add(2*time.Minute))
	require.NoError(t, repo.Save(ctx, product))

	stored, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("45.50")))
	assert.Equal(t, at.Add(2*time.Minute), stored.LastUpdated)
	require.Len(t, stored.PriceHistory, 2)
	assert.Equal(t, at.Add(time.Minute), stored.PriceHistory[0].Date)
}

func TestProductRepo_GetByIDMissing(t *testing.T) {
	repo := newTestRepo(t)

	product, err := repo.GetByID(context.Background(), -1)
	require.NoError(t, err)
	assert.Nil(t, product)
}
