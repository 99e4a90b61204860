package httpx

import (
	"net/url"
	"strconv"
	"time"

	"github.com/rmedinah/crm-backend/internal/crm/core/domain"
)

// Filter query parameters use double-underscore range suffixes
// (price__gte, created_at__lte, ...). An absent parameter means no
// constraint on that field.

func parseCustomerFilter(q url.Values) (domain.CustomerFilter, error) {
	var f domain.CustomerFilter
	f.Name = stringParam(q, "name")
	f.Email = stringParam(q, "email")
	f.PhonePrefix = stringParam(q, "phone_pattern")

	var err error
	if f.CreatedAtGTE, err = timeParam(q, "created_at__gte"); err != nil {
		return f, err
	}
	if f.CreatedAtLTE, err = timeParam(q, "created_at__lte"); err != nil {
		return f, err
	}
	return f, nil
}

func parseProductFilter(q url.Values) (domain.ProductFilter, error) {
	var f domain.ProductFilter
	f.Name = stringParam(q, "name")

	var err error
	if f.PriceGTE, err = floatParam(q, "price__gte"); err != nil {
		return f, err
	}
	if f.PriceLTE, err = floatParam(q, "price__lte"); err != nil {
		return f, err
	}
	if f.StockGTE, err = intParam(q, "stock__gte"); err != nil {
		return f, err
	}
	if f.StockLTE, err = intParam(q, "stock__lte"); err != nil {
		return f, err
	}
	return f, nil
}

func parseOrderFilter(q url.Values) (domain.OrderFilter, error) {
	var f domain.OrderFilter
	f.CustomerName = stringParam(q, "customer_name")
	f.ProductName = stringParam(q, "product_name")

	var err error
	if f.TotalGTE, err = floatParam(q, "total_amount__gte"); err != nil {
		return f, err
	}
	if f.TotalLTE, err = floatParam(q, "total_amount__lte"); err != nil {
		return f, err
	}
	if f.OrderDateGTE, err = timeParam(q, "order_date__gte"); err != nil {
		return f, err
	}
	if f.OrderDateLTE, err = timeParam(q, "order_date__lte"); err != nil {
		return f, err
	}
	if f.ProductID, err = int64Param(q, "product_id"); err != nil {
		return f, err
	}
	return f, nil
}

func stringParam(q url.Values, key string) *string {
	if !q.Has(key) {
		return nil
	}
	v := q.Get(key)
	return &v
}

func floatParam(q url.Values, key string) (*float64, error) {
	if !q.Has(key) {
		return nil, nil
	}
	v, err := strconv.ParseFloat(q.Get(key), 64)
	if err != nil {
		return nil, domain.Validationf("invalid value for %s: %s", key, q.Get(key))
	}
	return &v, nil
}

func intParam(q url.Values, key string) (*int, error) {
	if !q.Has(key) {
		return nil, nil
	}
	v, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return nil, domain.Validationf("invalid value for %s: %s", key, q.Get(key))
	}
	return &v, nil
}

func int64Param(q url.Values, key string) (*int64, error) {
	if !q.Has(key) {
		return nil, nil
	}
	v, err := strconv.ParseInt(q.Get(key), 10, 64)
	if err != nil {
		return nil, domain.Validationf("invalid value for %s: %s", key, q.Get(key))
	}
	return &v, nil
}

// timeParam accepts RFC3339 or a bare date (bounds are inclusive, so a bare
// lower-bound date means midnight that day).
func timeParam(q url.Values, key string) (*time.Time, error) {
	if !q.Has(key) {
		return nil, nil
	}
	raw := q.Get(key)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	return nil, domain.Validationf("invalid value for %s: %s", key, raw)
}
