package domain

import "time"

// Customer is a CRM contact. Email is unique across all customers (enforced
// both at write time and by the storage layer). Phone is optional; the empty
// string means "not set" and is stored as NULL. CreatedAt is set once when
// the row is inserted and never updated.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// CustomerInput is the raw payload for the create and bulk-create mutations,
// before any validation has run.
type CustomerInput struct {
	Name  string
	Email string
	Phone string
}
