package ports

import (
	"context"

	"github.com/rmedinah/crm-backend/internal/crm/core/domain"
)

// CustomerService exposes the customer mutations and queries to the
// transport layer.
type CustomerService interface {
	// Create validates and persists one customer. The returned string is the
	// confirmation message for the client.
	Create(ctx context.Context, in domain.CustomerInput) (*domain.Customer, string, error)
	// BulkCreate processes each input independently inside one transaction.
	// Failed records are skipped and reported as error strings, in input
	// order; successes commit regardless.
	BulkCreate(ctx context.Context, inputs []domain.CustomerInput) ([]*domain.Customer, []string, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context, f domain.CustomerFilter) ([]*domain.Customer, error)
}

// ProductService exposes the product mutations and queries.
type ProductService interface {
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, f domain.ProductFilter) ([]*domain.Product, error)
}

// OrderService exposes the order mutations and queries.
type OrderService interface {
	Create(ctx context.Context, customerID int64, productIDs []int64) (*domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, f domain.OrderFilter) ([]*domain.Order, error)
}
