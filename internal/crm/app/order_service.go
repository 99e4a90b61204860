package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rmedinah/crm-backend/internal/crm/audit"
	"github.com/rmedinah/crm-backend/internal/crm/core/domain"
	"github.com/rmedinah/crm-backend/internal/crm/core/ports"
)

// OrderService implements ports.OrderService.
type OrderService struct {
	repo  ports.OrderRepository
	audit audit.Repository // nil-safe
}

var _ ports.OrderService = (*OrderService)(nil)

// NewOrderService wires the order mutations. auditRepo may be nil.
func NewOrderService(repo ports.OrderRepository, auditRepo audit.Repository) *OrderService {
	return &OrderService{repo: repo, audit: auditRepo}
}

// Create creates an order for the customer over the given product ids. The
// total is a snapshot of the resolved products' prices at this moment; it is
// never recomputed afterwards.
func (s *OrderService) Create(ctx context.Context, customerID int64, productIDs []int64) (*domain.Order, error) {
	if len(productIDs) == 0 {
		return nil, domain.EmptyInputf("at least one product must be provided")
	}

	order, err := s.repo.Create(ctx, customerID, productIDs)
	if err != nil {
		return nil, err
	}

	if s.audit != nil {
		detail := fmt.Sprintf("customer=%d total=%.2f", order.CustomerID, order.TotalAmount)
		entry := audit.NewEntry(ctx, "order.create", "order", order.ID, detail, "")
		if err := s.audit.Save(ctx, entry); err != nil {
			slog.WarnContext(ctx, "audit write failed", "operation", "order.create", "order_id", order.ID, "error", err)
		}
	}
	slog.InfoContext(ctx, "order created",
		"order_id", order.ID, "customer_id", order.CustomerID,
		"products", len(order.Products), "total", order.TotalAmount)
	return order, nil
}

// Get returns one order by id, with its product set.
func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns the orders matching the filter.
func (s *OrderService) List(ctx context.Context, f domain.OrderFilter) ([]*domain.Order, error) {
	return s.repo.List(ctx, f)
}
