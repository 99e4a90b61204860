package ports

import (
	"context"

	"github.com/rmedinah/crm-backend/internal/crm/core/domain"
)

// CustomerWriter is the write surface shared by the plain repository and a
// batch transaction scope.
type CustomerWriter interface {
	// Create inserts the customer and fills in its ID and CreatedAt.
	Create(ctx context.Context, c *domain.Customer) error
	// ExistsByEmail reports whether any customer already has this email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CustomerRepository is the port for customer persistence.
type CustomerRepository interface {
	CustomerWriter
	FindByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context, f domain.CustomerFilter) ([]*domain.Customer, error)

	// WithinBatch runs fn against a transaction-scoped writer. The
	// transaction commits when fn returns nil, even if individual records
	// inside the batch were skipped, and rolls back only when fn itself
	// returns an error.
	WithinBatch(ctx context.Context, fn func(w CustomerWriter) error) error
}

// ProductRepository is the port for product persistence.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, f domain.ProductFilter) ([]*domain.Product, error)
}

// OrderRepository is the port for order persistence.
type OrderRepository interface {
	// Create resolves productIDs against existing products (unknown ids are
	// dropped silently), inserts the order with its associations and the
	// snapshot total, all in one transaction. Returns domain.ErrNotFound when
	// the customer does not exist or when no product id resolves.
	Create(ctx context.Context, customerID int64, productIDs []int64) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, f domain.OrderFilter) ([]*domain.Order, error)
}
