package memory

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/pricing-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepo_Empty(t *testing.T) {
	repo := NewProductRepo()

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, all)
	assert.Empty(t, all)

	p, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProductRepo_SeedOrder(t *testing.T) {
	repo := NewProductRepo(SeedProducts()...)

	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Product A", all[0].Name)
	assert.Len(t, all[0].PriceHistory, 3)
	assert.Equal(t, "Product B", all[1].Name)
	assert.Empty(t, all[1].PriceHistory)
}

func TestProductRepo_SaveReplacesState(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepo(SeedProducts()...)

	p, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)

	at := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	p.ChangePrice(decimal.RequireFromString("150.00"), at)

	unsaved, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, unsaved.Price.Equal(decimal.NewFromInt(200)), "borrowed copy must not leak before Save")

	require.NoError(t, repo.Save(ctx, p))

	saved, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, saved.Price.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, at, saved.LastUpdated)
	assert.Len(t, saved.PriceHistory, 1)
}

func TestProductRepo_ConstructorCopiesInput(t *testing.T) {
	p := domain.NewProduct(3, "C", decimal.NewFromInt(1), time.Now())
	repo := NewProductRepo(p)

	p.Name = "changed"

	got, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "C", got.Name)
}
