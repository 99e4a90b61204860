// Package audit defines the append-only mutation audit trail.
//
// Every successful mutation writes one row: which operation ran, which
// entity it touched, and the W3C trace/span ids of the request that caused
// it, so a row can be joined with the distributed trace and with the
// business data it created.
package audit

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Entry is a single immutable audit record.
type Entry struct {
	// Operation is the mutation name, e.g. "customer.create" or
	// "customer.bulk_create".
	Operation string

	// Entity is the kind of record touched: "customer", "product", "order".
	Entity string

	// EntityID is the primary key of the created row.
	EntityID int64

	// Detail is a short human-readable summary (customer email, order total).
	Detail string

	// BatchID groups the rows written by one bulk mutation. Empty for
	// single-entity mutations.
	BatchID string

	// TraceID and SpanID come from the OTel span active when the mutation
	// ran. Empty when no span is in the context (e.g. unit tests).
	TraceID string
	SpanID  string

	CreatedAt time.Time
}

// Repository is the port for persisting audit entries. Each Save appends a
// row; the trail is never updated in place.
type Repository interface {
	Save(ctx context.Context, e *Entry) error
}

// NewEntry builds an Entry with trace identifiers extracted from ctx.
func NewEntry(ctx context.Context, operation, entity string, entityID int64, detail, batchID string) *Entry {
	e := &Entry{
		Operation: operation,
		Entity:    entity,
		EntityID:  entityID,
		Detail:    detail,
		BatchID:   batchID,
		CreatedAt: time.Now().UTC(),
	}

	sc := trace.SpanFromContext(ctx).SpanContext()
	if sc.IsValid() {
		e.TraceID = sc.TraceID().String()
		e.SpanID = sc.SpanID().String()
	}
	return e
}
