package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rmedinah/crm-backend/internal/crm/audit"
	"github.com/rmedinah/crm-backend/internal/crm/core/domain"
	"github.com/rmedinah/crm-backend/internal/crm/core/ports"
)

// ProductService implements ports.ProductService.
type ProductService struct {
	repo  ports.ProductRepository
	audit audit.Repository // nil-safe
}

var _ ports.ProductService = (*ProductService)(nil)

// NewProductService wires the product mutations. auditRepo may be nil.
func NewProductService(repo ports.ProductRepository, auditRepo audit.Repository) *ProductService {
	return &ProductService{repo: repo, audit: auditRepo}
}

// Create validates and persists one product. Stock defaults to zero at the
// transport layer; here a negative value is rejected outright.
func (s *ProductService) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	if in.Name == "" {
		return nil, domain.Validationf("name is required")
	}
	if in.Price <= 0 {
		return nil, domain.Validationf("price must be positive")
	}
	if in.Stock < 0 {
		return nil, domain.Validationf("stock cannot be negative")
	}

	p := &domain.Product{Name: in.Name, Price: in.Price, Stock: in.Stock}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if s.audit != nil {
		entry := audit.NewEntry(ctx, "product.create", "product", p.ID, p.Name, "")
		if err := s.audit.Save(ctx, entry); err != nil {
			slog.WarnContext(ctx, "audit write failed", "operation", "product.create", "product_id", p.ID, "error", err)
		}
	}
	slog.InfoContext(ctx, "product created", "product_id", p.ID, "price", p.Price)
	return p, nil
}

// Get returns one product by id.
func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns the products matching the filter.
func (s *ProductService) List(ctx context.Context, f domain.ProductFilter) ([]*domain.Product, error) {
	return s.repo.List(ctx, f)
}
