package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rmedinah/crm-backend/internal/crm/core/domain"
	"github.com/rmedinah/crm-backend/internal/crm/core/ports"
)

// ProductRepository is the SQLite implementation of ports.ProductRepository.
type ProductRepository struct {
	db *sql.DB
}

var _ ports.ProductRepository = (*ProductRepository)(nil)

// Create inserts the product and fills in its ID.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	const stmt = `INSERT INTO products (name, price, stock) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, stmt, p.Name, p.Price, p.Stock)
	if err != nil {
		return fmt.Errorf("sqlite: create product: %w", err)
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: product insert id: %w", err)
	}
	return nil
}

// FindByID returns the product or domain.ErrNotFound.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `SELECT id, name, price, stock FROM products WHERE id = ?`

	var p domain.Product
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.Price, &p.Stock)
	if err == sql.ErrNoRows {
		return nil, domain.NotFoundf("product %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: find product %d: %w", id, err)
	}
	return &p, nil
}

// List returns the products matching every supplied predicate.
func (r *ProductRepository) List(ctx context.Context, f domain.ProductFilter) ([]*domain.Product, error) {
	q := `SELECT id, name, price, stock FROM products`

	var conds []string
	var args []any
	if f.Name != nil {
		conds = append(conds, `name LIKE '%' || ? || '%' ESCAPE '\'`)
		args = append(args, escapeLike(*f.Name))
	}
	if f.PriceGTE != nil {
		conds = append(conds, `price >= ?`)
		args = append(args, *f.PriceGTE)
	}
	if f.PriceLTE != nil {
		conds = append(conds, `price <= ?`)
		args = append(args, *f.PriceLTE)
	}
	if f.StockGTE != nil {
		conds = append(conds, `stock >= ?`)
		args = append(args, *f.StockGTE)
	}
	if f.StockLTE != nil {
		conds = append(conds, `stock <= ?`)
		args = append(args, *f.StockLTE)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("sqlite: scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
