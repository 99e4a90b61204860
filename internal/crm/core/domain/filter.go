package domain

import "time"

// Filter fields are pointers: nil means "no constraint on that field".
// All supplied predicates are combined with logical AND. Result ordering is
// whatever the store returns by default.

// CustomerFilter narrows customer queries. Name and Email are
// case-insensitive substring matches; the CreatedAt bounds are inclusive;
// PhonePrefix matches phones that start with the given string.
type CustomerFilter struct {
	Name         *string
	Email        *string
	CreatedAtGTE *time.Time
	CreatedAtLTE *time.Time
	PhonePrefix  *string
}

// ProductFilter narrows product queries. Bounds are inclusive.
type ProductFilter struct {
	Name     *string
	PriceGTE *float64
	PriceLTE *float64
	StockGTE *int
	StockLTE *int
}

// OrderFilter narrows order queries. CustomerName and ProductName match
// through the related customer / product rows; ProductID selects orders that
// contain that exact product.
type OrderFilter struct {
	TotalGTE     *float64
	TotalLTE     *float64
	OrderDateGTE *time.Time
	OrderDateLTE *time.Time
	CustomerName *string
	ProductName  *string
	ProductID    *int64
}
