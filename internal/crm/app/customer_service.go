// Package app implements the mutation and query services behind the CRM API.
// Validation runs here; persistence, uniqueness constraints, and cascades
// belong to the storage layer.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rmedinah/crm-backend/internal/crm/audit"
	"github.com/rmedinah/crm-backend/internal/crm/core/domain"
	"github.com/rmedinah/crm-backend/internal/crm/core/ports"
	"github.com/rmedinah/crm-backend/internal/pkg/validation"
)

// CustomerService implements ports.CustomerService.
type CustomerService struct {
	repo  ports.CustomerRepository
	val   *validation.Validator
	audit audit.Repository // nil-safe: auditing skipped if nil
}

var _ ports.CustomerService = (*CustomerService)(nil)

// NewCustomerService wires the customer mutations. auditRepo may be nil.
func NewCustomerService(repo ports.CustomerRepository, val *validation.Validator, auditRepo audit.Repository) *CustomerService {
	return &CustomerService{repo: repo, val: val, audit: auditRepo}
}

// Create validates and persists one customer.
func (s *CustomerService) Create(ctx context.Context, in domain.CustomerInput) (*domain.Customer, string, error) {
	c, err := s.createOne(ctx, s.repo, in)
	if err != nil {
		return nil, "", err
	}

	s.recordAudit(ctx, "customer.create", c.ID, c.Email, "")
	slog.InfoContext(ctx, "customer created", "customer_id", c.ID)
	return c, "Customer created successfully!", nil
}

// BulkCreate processes each input independently inside one transaction.
// Records that fail validation or duplicate an existing email are skipped
// and reported as error strings in input order; the transaction commits
// regardless, so successes are never rolled back by failures.
func (s *CustomerService) BulkCreate(ctx context.Context, inputs []domain.CustomerInput) ([]*domain.Customer, []string, error) {
	created := []*domain.Customer{}
	errs := []string{}
	batchID := uuid.NewString()

	err := s.repo.WithinBatch(ctx, func(w ports.CustomerWriter) error {
		for _, in := range inputs {
			c, err := s.createOne(ctx, w, in)
			if err != nil {
				errs = append(errs, err.Error())
				continue
			}
			created = append(created, c)
		}
		// Always nil: per-record failures must not abort the batch.
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	for _, c := range created {
		s.recordAudit(ctx, "customer.bulk_create", c.ID, c.Email, batchID)
	}
	slog.InfoContext(ctx, "bulk customer create finished",
		"batch_id", batchID, "created", len(created), "failed", len(errs))
	return created, errs, nil
}

// Get returns one customer by id.
func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns the customers matching the filter.
func (s *CustomerService) List(ctx context.Context, f domain.CustomerFilter) ([]*domain.Customer, error) {
	return s.repo.List(ctx, f)
}

// createOne runs the full validate-then-create sequence against w, which is
// either the plain repository or a batch transaction scope.
func (s *CustomerService) createOne(ctx context.Context, w ports.CustomerWriter, in domain.CustomerInput) (*domain.Customer, error) {
	if in.Name == "" || in.Email == "" {
		return nil, domain.Validationf("name and email are required")
	}
	if !s.val.Email(in.Email) {
		return nil, domain.Validationf("invalid email format: %s", in.Email)
	}
	if in.Phone != "" && !s.val.Phone(in.Phone) {
		return nil, domain.Validationf("invalid phone number: %s", in.Phone)
	}

	// Check-then-create: a concurrent duplicate can still slip through to
	// the UNIQUE constraint, which is the backstop.
	exists, err := w.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email uniqueness: %w", err)
	}
	if exists {
		return nil, domain.Conflictf("duplicate email: %s", in.Email)
	}

	c := &domain.Customer{Name: in.Name, Email: in.Email, Phone: in.Phone}
	if err := w.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

func (s *CustomerService) recordAudit(ctx context.Context, operation string, id int64, detail, batchID string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Save(ctx, audit.NewEntry(ctx, operation, "customer", id, detail, batchID)); err != nil {
		slog.WarnContext(ctx, "audit write failed", "operation", operation, "customer_id", id, "error", err)
	}
}
