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

// OrderRepository is the SQLite implementation of ports.OrderRepository.
type OrderRepository struct {
	db *sql.DB
}

var _ ports.OrderRepository = (*OrderRepository)(nil)

// Create resolves the product ids, inserts the order, its product
// associations, and the snapshot total in one transaction.
//
// Unknown product ids are dropped silently; the mutation only fails when the
// customer is missing or no id resolves at all.
func (r *OrderRepository) Create(ctx context.Context, customerID int64, productIDs []int64) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: begin order: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var customerExists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE id = ?)`, customerID,
	).Scan(&customerExists); err != nil {
		return nil, fmt.Errorf("sqlite: check customer %d: %w", customerID, err)
	}
	if !customerExists {
		return nil, domain.NotFoundf("invalid customer id: %d", customerID)
	}

	products, err := resolveProducts(ctx, tx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.NotFoundf("invalid product ids")
	}

	order := &domain.Order{
		CustomerID:  customerID,
		Products:    products,
		TotalAmount: domain.OrderTotal(products),
		OrderDate:   time.Now().UTC().Truncate(time.Second),
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (customer_id, total_amount, order_date) VALUES (?, ?, ?)`,
		order.CustomerID, order.TotalAmount, formatTime(order.OrderDate),
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: create order: %w", err)
	}
	order.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: order insert id: %w", err)
	}

	for _, p := range products {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_products (order_id, product_id) VALUES (?, ?)`,
			order.ID, p.ID,
		); err != nil {
			return nil, fmt.Errorf("sqlite: associate product %d: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: commit order: %w", err)
	}
	return order, nil
}

// FindByID returns the order with its product set, or domain.ErrNotFound.
func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	const q = `SELECT id, customer_id, total_amount, order_date FROM orders WHERE id = ?`

	o, err := scanOrder(r.db.QueryRowContext(ctx, q, id))
	if err == sql.ErrNoRows {
		return nil, domain.NotFoundf("order %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: find order %d: %w", id, err)
	}
	if o.Products, err = orderProducts(ctx, r.db, o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// List returns the orders matching every supplied predicate, each with its
// product set loaded.
func (r *OrderRepository) List(ctx context.Context, f domain.OrderFilter) ([]*domain.Order, error) {
	q := `SELECT o.id, o.customer_id, o.total_amount, o.order_date FROM orders o`

	var conds []string
	var args []any
	if f.CustomerName != nil {
		q += ` JOIN customers c ON c.id = o.customer_id`
		conds = append(conds, `c.name LIKE '%' || ? || '%' ESCAPE '\'`)
		args = append(args, escapeLike(*f.CustomerName))
	}
	if f.TotalGTE != nil {
		conds = append(conds, `o.total_amount >= ?`)
		args = append(args, *f.TotalGTE)
	}
	if f.TotalLTE != nil {
		conds = append(conds, `o.total_amount <= ?`)
		args = append(args, *f.TotalLTE)
	}
	if f.OrderDateGTE != nil {
		conds = append(conds, `o.order_date >= ?`)
		args = append(args, formatTime(*f.OrderDateGTE))
	}
	if f.OrderDateLTE != nil {
		conds = append(conds, `o.order_date <= ?`)
		args = append(args, formatTime(*f.OrderDateLTE))
	}
	if f.ProductName != nil {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM order_products op
			JOIN products p ON p.id = op.product_id
			WHERE op.order_id = o.id AND p.name LIKE '%' || ? || '%' ESCAPE '\')`)
		args = append(args, escapeLike(*f.ProductName))
	}
	if f.ProductID != nil {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM order_products op
			WHERE op.order_id = o.id AND op.product_id = ?)`)
		args = append(args, *f.ProductID)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if o.Products, err = orderProducts(ctx, r.db, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// resolveProducts loads the products whose ids appear in productIDs.
// Duplicate and unknown ids simply do not contribute rows.
func resolveProducts(ctx context.Context, q querier, productIDs []int64) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(productIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(productIDs))
	for i, id := range productIDs {
		args[i] = id
	}

	rows, err := q.QueryContext(ctx,
		`SELECT id, name, price, stock FROM products WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: resolve products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("sqlite: scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func orderProducts(ctx context.Context, q querier, orderID int64) ([]domain.Product, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT p.id, p.name, p.price, p.stock
		FROM   order_products op
		JOIN   products p ON p.id = op.product_id
		WHERE  op.order_id = ?`, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: load order %d products: %w", orderID, err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("sqlite: scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var orderDate string
	if err := row.Scan(&o.ID, &o.CustomerID, &o.TotalAmount, &orderDate); err != nil {
		return nil, err
	}
	var err error
	o.OrderDate, err = parseTime(orderDate)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
