// Package sqlite provides the SQLite-backed implementations of the CRM
// repository ports.
//
// WAL mode is enabled on Open so readers never block the writer. The schema
// itself enforces email uniqueness, foreign keys and cascade-on-delete;
// foreign_keys=on is set per connection.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Pure-Go SQLite driver: no CGO, so the binary builds anywhere.
	_ "modernc.org/sqlite"
)

// schema is the DDL executed once on startup. Idempotent via IF NOT EXISTS.
const schema = `
CREATE TABLE IF NOT EXISTS customers (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        TEXT    NOT NULL,

    -- Unique across all customers; the constraint is the last line of
    -- defence behind the application-level check-then-create.
    email       TEXT    NOT NULL UNIQUE,

    -- NULL when the customer has no phone on file.
    phone       TEXT,

    -- Set once at insert, never updated (RFC3339 UTC, SQLite TEXT idiom).
    created_at  TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
    id     INTEGER PRIMARY KEY AUTOINCREMENT,
    name   TEXT    NOT NULL,
    price  REAL    NOT NULL CHECK (price > 0),
    stock  INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0)
);

CREATE TABLE IF NOT EXISTS orders (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Deleting a customer removes their orders.
    customer_id   INTEGER NOT NULL REFERENCES customers(id) ON DELETE CASCADE,

    -- Snapshot of the product prices at creation time, not a live sum.
    total_amount  REAL    NOT NULL DEFAULT 0,

    order_date    TEXT    NOT NULL
);

-- Many-to-many between orders and products.
CREATE TABLE IF NOT EXISTS order_products (
    order_id    INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    product_id  INTEGER NOT NULL REFERENCES products(id),
    PRIMARY KEY (order_id, product_id)
);

CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_order_products_product_id ON order_products(product_id);
`

// Store owns the database handle shared by the per-entity repositories.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at the given path and applies
// the schema.
//
//	store, err := sqlite.Open("./data/crm.db")
func Open(path string) (*Store, error) {
	// _pragma query parameters configure each connection of the pure-Go
	// driver. busy_timeout waits for locks instead of failing immediately.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB exposes the underlying handle so sibling repositories (e.g. the audit
// log) can share the same database file and transaction semantics.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the database connection. Call it with defer in main().
func (s *Store) Close() error { return s.db.Close() }

// Customers returns the customer repository bound to this store.
func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{db: s.db} }

// Products returns the product repository bound to this store.
func (s *Store) Products() *ProductRepository { return &ProductRepository{db: s.db} }

// Orders returns the order repository bound to this store.
func (s *Store) Orders() *OrderRepository { return &OrderRepository{db: s.db} }

// querier is the subset of *sql.DB and *sql.Tx the repositories need, so the
// same statement helpers serve both transactional and plain paths.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// nullableString returns nil for empty strings so SQLite stores NULL instead
// of an empty TEXT.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// likeEscaper neutralizes LIKE metacharacters so filter values match
// literally. Every LIKE clause built here carries ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
