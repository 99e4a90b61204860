package domain

// Product is a catalog item. Price must be strictly positive (minimum 0.01);
// stock is a non-negative count defaulting to zero.
type Product struct {
	ID    int64
	Name  string
	Price float64
	Stock int
}

// ProductInput is the raw payload for the create-product mutation.
type ProductInput struct {
	Name  string
	Price float64
	Stock int
}
