package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmedinah/crm-backend/internal/crm/core/domain"
)

func newProductService(t *testing.T) *ProductService {
	t.Helper()
	store, auditRepo := newStore(t)
	return NewProductService(store.Products(), auditRepo)
}

func TestProductService_Create(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, domain.ProductInput{Name: "Widget", Price: 19.99, Stock: 7})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, 19.99, p.Price)
	assert.Equal(t, 7, p.Stock)
}

func TestProductService_Create_PriceValidation(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.ProductInput{Name: "Free", Price: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "price must be positive", err.Error())

	_, err = svc.Create(ctx, domain.ProductInput{Name: "Negative", Price: -5})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// The documented minimum price.
	p, err := svc.Create(ctx, domain.ProductInput{Name: "Penny", Price: 0.01})
	require.NoError(t, err)
	assert.Equal(t, 0.01, p.Price)
}

func TestProductService_Create_StockValidation(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.ProductInput{Name: "X", Price: 1, Stock: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "stock cannot be negative", err.Error())

	p, err := svc.Create(ctx, domain.ProductInput{Name: "X", Price: 1})
	require.NoError(t, err)
	assert.Zero(t, p.Stock)
}

func TestProductService_Create_NameRequired(t *testing.T) {
	svc := newProductService(t)

	_, err := svc.Create(context.Background(), domain.ProductInput{Price: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProductService_GetAndList(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.ProductInput{Name: "Widget", Price: 15})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)

	_, err = svc.Get(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	gte := 10.0
	list, err := svc.List(ctx, domain.ProductFilter{PriceGTE: &gte})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
