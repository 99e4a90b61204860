package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rmedinah/crm-backend/internal/crm/core/domain"
	"github.com/rmedinah/crm-backend/internal/crm/core/ports"
)

// CustomerRepository is the SQLite implementation of ports.CustomerRepository.
type CustomerRepository struct {
	db *sql.DB
}

var _ ports.CustomerRepository = (*CustomerRepository)(nil)

// Create inserts the customer and fills in ID and CreatedAt.
func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	return createCustomer(ctx, r.db, c)
}

// ExistsByEmail reports whether a customer row with this email exists.
func (r *CustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return customerEmailExists(ctx, r.db, email)
}

// FindByID returns the customer or domain.ErrNotFound.
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const q = `
		SELECT id, name, email, COALESCE(phone, ''), created_at
		FROM   customers
		WHERE  id = ?`

	c, err := scanCustomer(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, domain.NotFoundf("customer %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: find customer %d: %w", id, err)
	}
	return c, nil
}

// List returns the customers matching every supplied predicate.
func (r *CustomerRepository) List(ctx context.Context, f domain.CustomerFilter) ([]*domain.Customer, error) {
	q := `SELECT id, name, email, COALESCE(phone, ''), created_at FROM customers`

	var conds []string
	var args []any
	if f.Name != nil {
		// SQLite LIKE is case-insensitive for ASCII, matching the
		// case-insensitive-substring contract.
		conds = append(conds, `name LIKE '%' || ? || '%' ESCAPE '\'`)
		args = append(args, escapeLike(*f.Name))
	}
	if f.Email != nil {
		conds = append(conds, `email LIKE '%' || ? || '%' ESCAPE '\'`)
		args = append(args, escapeLike(*f.Email))
	}
	if f.CreatedAtGTE != nil {
		conds = append(conds, `created_at >= ?`)
		args = append(args, formatTime(*f.CreatedAtGTE))
	}
	if f.CreatedAtLTE != nil {
		conds = append(conds, `created_at <= ?`)
		args = append(args, formatTime(*f.CreatedAtLTE))
	}
	if f.PhonePrefix != nil {
		conds = append(conds, `phone LIKE ? || '%' ESCAPE '\'`)
		args = append(args, escapeLike(*f.PhonePrefix))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list customers: %w", err)
	}
	defer rows.Close()

	var customers []*domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// WithinBatch runs fn against a transaction-scoped writer. The transaction
// commits when fn returns nil; per-record failures inside the batch must not
// be surfaced as fn's error if the batch is meant to commit.
func (r *CustomerRepository) WithinBatch(ctx context.Context, fn func(w ports.CustomerWriter) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin batch: %w", err)
	}
	if err := fn(&customerBatch{ctx: ctx, tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit batch: %w", err)
	}
	return nil
}

// customerBatch is the transaction-scoped ports.CustomerWriter.
type customerBatch struct {
	ctx context.Context
	tx  *sql.Tx
}

func (b *customerBatch) Create(ctx context.Context, c *domain.Customer) error {
	return createCustomer(ctx, b.tx, c)
}

func (b *customerBatch) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	// Inside the batch transaction this also sees rows created earlier in
	// the same batch, so an in-batch duplicate is reported the same way as
	// one against persisted data.
	return customerEmailExists(ctx, b.tx, email)
}

func createCustomer(ctx context.Context, q querier, c *domain.Customer) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	const stmt = `
		INSERT INTO customers (name, email, phone, created_at)
		VALUES (?, ?, ?, ?)`

	res, err := q.ExecContext(ctx, stmt, c.Name, c.Email, nullableString(c.Phone), formatTime(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("sqlite: create customer: %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: customer insert id: %w", err)
	}
	return nil
}

func customerEmailExists(ctx context.Context, q querier, email string) (bool, error) {
	const stmt = `SELECT EXISTS (SELECT 1 FROM customers WHERE email = ?)`

	var exists bool
	if err := q.QueryRowContext(ctx, stmt, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("sqlite: check email %q: %w", email, err)
	}
	return exists, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	var createdAt string
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &createdAt); err != nil {
		return nil, err
	}
	var err error
	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
