package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmedinah/crm-backend/internal/crm/core/domain"
)

func TestProductRepository_CreateAndFind(t *testing.T) {
	repo := setupStore(t).Products()
	ctx := context.Background()

	p := &domain.Product{Name: "Widget", Price: 9.99, Stock: 25}
	require.NoError(t, repo.Create(ctx, p))
	require.NotZero(t, p.ID)

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", found.Name)
	assert.Equal(t, 9.99, found.Price)
	assert.Equal(t, 25, found.Stock)
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	repo := setupStore(t).Products()

	_, err := repo.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepository_List(t *testing.T) {
	repo := setupStore(t).Products()
	ctx := context.Background()

	// Insertion order deliberately scrambled relative to price.
	seed := []*domain.Product{
		{Name: "Deluxe Widget", Price: 25, Stock: 5},
		{Name: "Basic Widget", Price: 10, Stock: 100},
		{Name: "Gadget", Price: 15, Stock: 0},
		{Name: "Trinket", Price: 5, Stock: 50},
		{Name: "Premium Gadget", Price: 20, Stock: 3},
	}
	for _, p := range seed {
		require.NoError(t, repo.Create(ctx, p))
	}

	names := func(products []*domain.Product) []string {
		out := make([]string, len(products))
		for i, p := range products {
			out[i] = p.Name
		}
		return out
	}

	t.Run("price range returns exactly the matching set", func(t *testing.T) {
		gte, lte := 10.0, 20.0
		got, err := repo.List(ctx, domain.ProductFilter{PriceGTE: &gte, PriceLTE: &lte})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Basic Widget", "Gadget", "Premium Gadget"}, names(got))
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		gte, lte := 25.0, 25.0
		got, err := repo.List(ctx, domain.ProductFilter{PriceGTE: &gte, PriceLTE: &lte})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Deluxe Widget"}, names(got))
	})

	t.Run("stock bounds", func(t *testing.T) {
		gte := 50
		got, err := repo.List(ctx, domain.ProductFilter{StockGTE: &gte})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Basic Widget", "Trinket"}, names(got))

		lte := 0
		got, err = repo.List(ctx, domain.ProductFilter{StockLTE: &lte})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Gadget"}, names(got))
	})

	t.Run("name substring", func(t *testing.T) {
		name := "widget"
		got, err := repo.List(ctx, domain.ProductFilter{Name: &name})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Deluxe Widget", "Basic Widget"}, names(got))
	})

	t.Run("name and price combine with AND", func(t *testing.T) {
		name := "gadget"
		lte := 15.0
		got, err := repo.List(ctx, domain.ProductFilter{Name: &name, PriceLTE: &lte})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Gadget"}, names(got))
	})
}

func TestProductRepository_List_LikeMetacharactersAreLiteral(t *testing.T) {
	repo := setupStore(t).Products()
	ctx := context.Background()

	seed := []*domain.Product{
		{Name: "50% off sale", Price: 5, Stock: 1},
		{Name: "Widget", Price: 10, Stock: 1},
		{Name: "snake_case", Price: 15, Stock: 1},
	}
	for _, p := range seed {
		require.NoError(t, repo.Create(ctx, p))
	}

	names := func(products []*domain.Product) []string {
		out := make([]string, len(products))
		for i, p := range products {
			out[i] = p.Name
		}
		return out
	}

	t.Run("underscores do not act as single-char wildcards", func(t *testing.T) {
		name := "_____"
		got, err := repo.List(ctx, domain.ProductFilter{Name: &name})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("percent matches only a literal percent", func(t *testing.T) {
		name := "50%"
		got, err := repo.List(ctx, domain.ProductFilter{Name: &name})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"50% off sale"}, names(got))
	})

	t.Run("underscore matches only a literal underscore", func(t *testing.T) {
		name := "snake_"
		got, err := repo.List(ctx, domain.ProductFilter{Name: &name})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"snake_case"}, names(got))
	})
}
