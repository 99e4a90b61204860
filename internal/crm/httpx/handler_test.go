package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmedinah/crm-backend/internal/crm/app"
	auditsqlite "github.com/rmedinah/crm-backend/internal/crm/audit/sqlite"
	"github.com/rmedinah/crm-backend/internal/crm/storage/sqlite"
	"github.com/rmedinah/crm-backend/internal/pkg/validation"
)

// newTestServer wires the full stack against an in-memory database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	auditRepo, err := auditsqlite.New(store.DB())
	require.NoError(t, err)

	val := validation.New()
	handler := NewHandler(
		app.NewCustomerService(store.Customers(), val, auditRepo),
		app.NewProductService(store.Products(), auditRepo),
		app.NewOrderService(store.Orders(), auditRepo),
	)

	server := httptest.NewServer(NewRouter(handler))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestCreateCustomerEndpoint(t *testing.T) {
	server := newTestServer(t)

	t.Run("created", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/customers", CreateCustomerRequest{
			Name: "Alice", Email: "alice@example.com", Phone: "+1 555 123 4567",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decode[CreateCustomerResponse](t, resp)
		assert.Equal(t, "Customer created successfully!", body.Message)
		assert.Equal(t, "alice@example.com", body.Customer.Email)
		assert.NotZero(t, body.Customer.ID)
		assert.NotEmpty(t, body.Customer.CreatedAt)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/customers", CreateCustomerRequest{
			Name: "Other", Email: "alice@example.com",
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		body := decode[ErrorResponse](t, resp)
		assert.Equal(t, "conflict", body.Error)
		assert.Equal(t, "duplicate email: alice@example.com", body.Message)
	})

	t.Run("invalid email", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/customers", CreateCustomerRequest{
			Name: "Bad", Email: "not-an-email",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "validation_error", decode[ErrorResponse](t, resp).Error)
	})

	t.Run("invalid phone", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/customers", CreateCustomerRequest{
			Name: "Bad", Email: "phone@example.com", Phone: "abc",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed json", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/customers", "application/json", bytes.NewReader([]byte("{")))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestBulkCreateCustomersEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/customers/bulk", BulkCreateCustomersRequest{
		Customers: []CreateCustomerRequest{
			{Name: "A", Email: "a@bulk.test"},
			{Name: "B", Email: "a@bulk.test"},
			{Name: "C", Email: "c@bulk.test"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[BulkCreateCustomersResponse](t, resp)
	require.Len(t, body.Customers, 2)
	assert.Equal(t, "A", body.Customers[0].Name)
	assert.Equal(t, "C", body.Customers[1].Name)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "duplicate email: a@bulk.test", body.Errors[0])

	// Successes committed despite the failed record.
	var customers []CustomerResponse
	getResp := getJSON(t, server.URL+"/customers", &customers)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	assert.Len(t, customers, 2)
}

func TestProductEndpoints(t *testing.T) {
	server := newTestServer(t)

	t.Run("create validates price", func(t *testing.T) {
		for _, price := range []float64{0, -5} {
			resp := postJSON(t, server.URL+"/products", CreateProductRequest{Name: "Bad", Price: price})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "price %v must be rejected", price)
		}

		resp := postJSON(t, server.URL+"/products", CreateProductRequest{Name: "Penny", Price: 0.01})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("stock defaults to zero", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/products", CreateProductRequest{Name: "NoStock", Price: 1})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Zero(t, decode[ProductResponse](t, resp).Stock)
	})

	t.Run("price range filter", func(t *testing.T) {
		for name, price := range map[string]float64{"Low": 5, "Mid": 15, "High": 25} {
			resp := postJSON(t, server.URL+"/products", CreateProductRequest{Name: name, Price: price})
			require.Equal(t, http.StatusCreated, resp.StatusCode)
		}

		var products []ProductResponse
		resp := getJSON(t, server.URL+"/products?price__gte=10&price__lte=20", &products)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, products, 1)
		assert.Equal(t, "Mid", products[0].Name)
	})

	t.Run("bad filter value", func(t *testing.T) {
		resp := getJSON(t, server.URL+"/products?price__gte=abc", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("get by id", func(t *testing.T) {
		resp := getJSON(t, server.URL+"/products/99999", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestOrderEndpoints(t *testing.T) {
	server := newTestServer(t)

	custResp := postJSON(t, server.URL+"/customers", CreateCustomerRequest{
		Name: "Buyer", Email: "buyer@example.com",
	})
	require.Equal(t, http.StatusCreated, custResp.StatusCode)
	customer := decode[CreateCustomerResponse](t, custResp).Customer

	widgetResp := postJSON(t, server.URL+"/products", CreateProductRequest{Name: "Widget", Price: 9.99})
	require.Equal(t, http.StatusCreated, widgetResp.StatusCode)
	widget := decode[ProductResponse](t, widgetResp)

	t.Run("create with partial resolution", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/orders", CreateOrderRequest{
			CustomerID: customer.ID,
			ProductIDs: []int64{widget.ID, 424242},
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		order := decode[OrderResponse](t, resp)
		require.Len(t, order.Products, 1)
		assert.InDelta(t, 9.99, order.TotalAmount, 1e-9)
	})

	t.Run("empty product ids", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/orders", CreateOrderRequest{CustomerID: customer.ID})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "empty_input", decode[ErrorResponse](t, resp).Error)
	})

	t.Run("unknown customer", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/orders", CreateOrderRequest{
			CustomerID: 88888, ProductIDs: []int64{widget.ID},
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("all product ids unknown", func(t *testing.T) {
		resp := postJSON(t, server.URL+"/orders", CreateOrderRequest{
			CustomerID: customer.ID, ProductIDs: []int64{111, 222},
		})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("list filtered by product id", func(t *testing.T) {
		var orders []OrderResponse
		url := fmt.Sprintf("%s/orders?product_id=%d", server.URL, widget.ID)
		resp := getJSON(t, url, &orders)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, orders, 1)
		assert.Equal(t, customer.ID, orders[0].CustomerID)
	})

	t.Run("bad product id filter", func(t *testing.T) {
		resp := getJSON(t, server.URL+"/orders?product_id=abc", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("list filtered by customer name", func(t *testing.T) {
		var orders []OrderResponse
		resp := getJSON(t, server.URL+"/orders?customer_name=buy", &orders)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, orders, 1)
	})
}

func TestCustomerFilterEndpoint(t *testing.T) {
	server := newTestServer(t)

	seed := []CreateCustomerRequest{
		{Name: "Alice Cooper", Email: "alice@acme.test", Phone: "+1 202 555 0101"},
		{Name: "Bob Stone", Email: "bob@acme.test", Phone: "+44 20 5550 102"},
	}
	for _, c := range seed {
		resp := postJSON(t, server.URL+"/customers", c)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	t.Run("case-insensitive name match", func(t *testing.T) {
		var customers []CustomerResponse
		resp := getJSON(t, server.URL+"/customers?name=ALICE", &customers)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, customers, 1)
		assert.Equal(t, "alice@acme.test", customers[0].Email)
	})

	t.Run("phone prefix", func(t *testing.T) {
		var customers []CustomerResponse
		resp := getJSON(t, server.URL+"/customers?phone_pattern=%2B44", &customers)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, customers, 1)
		assert.Equal(t, "bob@acme.test", customers[0].Email)
	})

	t.Run("get by id", func(t *testing.T) {
		resp := getJSON(t, server.URL+"/customers/99999", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestWriteDomainError_InternalDetailNotLeaked(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/customers", nil)

	writeDomainError(rec, req, errors.New("sqlite: disk I/O error at offset 4096"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "internal_error", body.Error)
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, body.Message, "sqlite")
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, server.URL+"/healthz", &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}
