package domain

import "time"

// Order belongs to exactly one customer and references a set of products
// (many-to-many). TotalAmount is a snapshot: it is computed once at creation
// from the prices of the associated products and is NOT recomputed if those
// prices later change.
type Order struct {
	ID          int64
	CustomerID  int64
	Products    []Product
	TotalAmount float64
	OrderDate   time.Time
}

// OrderTotal returns the sum of the given products' current prices.
func OrderTotal(products []Product) float64 {
	var total float64
	for _, p := range products {
		total += p.Price
	}
	return total
}
