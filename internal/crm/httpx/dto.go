package httpx

import (
	"time"

	"github.com/rmedinah/crm-backend/internal/crm/core/domain"
)

type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type CustomerResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at"`
}

type CreateCustomerResponse struct {
	Customer CustomerResponse `json:"customer"`
	Message  string           `json:"message"`
}

type BulkCreateCustomersRequest struct {
	Customers []CreateCustomerRequest `json:"customers"`
}

type BulkCreateCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Errors    []string           `json:"errors"`
}

type CreateProductRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	// Pointer so an absent stock defaults to zero while an explicit
	// negative value is still rejected.
	Stock *int `json:"stock,omitempty"`
}

type ProductResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

type CreateOrderRequest struct {
	CustomerID int64   `json:"customer_id"`
	ProductIDs []int64 `json:"product_ids"`
}

type OrderResponse struct {
	ID          int64             `json:"id"`
	CustomerID  int64             `json:"customer_id"`
	Products    []ProductResponse `json:"products"`
	TotalAmount float64           `json:"total_amount"`
	OrderDate   string            `json:"order_date"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func mapCustomerToResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapCustomers(customers []*domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		out[i] = mapCustomerToResponse(c)
	}
	return out
}

func mapProductToResponse(p *domain.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}
}

func mapProducts(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = mapProductToResponse(p)
	}
	return out
}

func mapOrderToResponse(o *domain.Order) OrderResponse {
	products := make([]ProductResponse, len(o.Products))
	for i := range o.Products {
		products[i] = mapProductToResponse(&o.Products[i])
	}
	return OrderResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		Products:    products,
		TotalAmount: o.TotalAmount,
		OrderDate:   o.OrderDate.UTC().Format(time.RFC3339),
	}
}

func mapOrders(orders []*domain.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = mapOrderToResponse(o)
	}
	return out
}
