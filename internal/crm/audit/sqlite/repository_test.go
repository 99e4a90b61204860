package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmedinah/crm-backend/internal/crm/audit"
	storage "github.com/rmedinah/crm-backend/internal/crm/storage/sqlite"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()

	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	repo, err := New(store.DB())
	require.NoError(t, err)
	return repo
}

func TestRepository_SaveAndForEntity(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	batchID := uuid.NewString()
	entries := []*audit.Entry{
		{Operation: "customer.create", Entity: "customer", EntityID: 1, Detail: "a@example.com", CreatedAt: time.Now().UTC()},
		{Operation: "customer.bulk_create", Entity: "customer", EntityID: 1, Detail: "a@example.com", BatchID: batchID, CreatedAt: time.Now().UTC()},
		{Operation: "product.create", Entity: "product", EntityID: 7, Detail: "Widget", CreatedAt: time.Now().UTC()},
	}
	for _, e := range entries {
		require.NoError(t, repo.Save(ctx, e))
	}

	got, err := repo.ForEntity(ctx, "customer", 1)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first.
	assert.Equal(t, "customer.bulk_create", got[0].Operation)
	assert.Equal(t, batchID, got[0].BatchID)
	assert.Equal(t, "customer.create", got[1].Operation)

	got, err = repo.ForEntity(ctx, "order", 1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewEntry_WithoutSpan(t *testing.T) {
	e := audit.NewEntry(context.Background(), "order.create", "order", 3, "total=12.50", "")
	assert.Empty(t, e.TraceID)
	assert.Empty(t, e.SpanID)
	assert.False(t, e.CreatedAt.IsZero())
	assert.Equal(t, "order.create", e.Operation)
}
