package app

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	auditsqlite "github.com/rmedinah/crm-backend/internal/crm/audit/sqlite"
	"github.com/rmedinah/crm-backend/internal/crm/storage/sqlite"
)

func uniqueEmail(t *testing.T) string {
	t.Helper()
	return uuid.NewString() + "@example.com"
}

// newStore opens an in-memory store plus its audit repository.
func newStore(t *testing.T) (*sqlite.Store, *auditsqlite.Repository) {
	t.Helper()

	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	auditRepo, err := auditsqlite.New(store.DB())
	require.NoError(t, err)
	return store, auditRepo
}
