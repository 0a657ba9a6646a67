// Package supplierapi calls external supplier product-lookup endpoints.
// Supplier responses are untrusted and partial: the decoder tolerates
// field-name variants and missing optional fields, rejecting only payloads
// that are not JSON at all.
package supplierapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single supplier lookup.
const DefaultTimeout = 10 * time.Second

// ProductData is the canonical shape of a supplier's product report.
type ProductData struct {
	SKU       string  `json:"sku"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Currency  string  `json:"currency"`
	Available bool    `json:"available"`
}

// rawProduct accepts the field-name variants observed across supplier APIs.
type rawProduct struct {
	SKU       string   `json:"sku"`
	Price     *float64 `json:"price"`
	CostPrice *float64 `json:"costPrice"`
	Stock     *int     `json:"stock"`
	Quantity  *int     `json:"quantity"`
	Currency  string   `json:"currency"`
	Available *bool    `json:"available"`
}

type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// FetchProduct looks up a product by SKU against a supplier's API. Transport
// failures, timeouts and non-2xx responses are returned as errors; callers
// treat them as soft per-product failures.
func (c *Client) FetchProduct(ctx context.Context, apiBaseURL, sku string) (*ProductData, error) {
	url := fmt.Sprintf("%s/products/%s", strings.TrimRight(apiBaseURL, "/"), sku)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("supplier api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supplier api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("supplier api returned %d for SKU %s", resp.StatusCode, sku)
	}

	var raw rawProduct
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("supplier api: invalid payload: %w", err)
	}

	return normalize(raw, sku), nil
}

func normalize(raw rawProduct, fallbackSKU string) *ProductData {
	data := &ProductData{
		SKU:      raw.SKU,
		Currency: raw.Currency,
		// Only an explicit false marks the product unavailable
		Available: raw.Available == nil || *raw.Available,
	}
	if data.SKU == "" {
		data.SKU = fallbackSKU
	}
	if data.Currency == "" {
		data.Currency = "USD"
	}
	if raw.Price != nil && *raw.Price != 0 {
		data.Price = *raw.Price
	} else if raw.CostPrice != nil {
		data.Price = *raw.CostPrice
	}
	if raw.Stock != nil && *raw.Stock != 0 {
		data.Stock = *raw.Stock
	} else if raw.Quantity != nil {
		data.Stock = *raw.Quantity
	}
	return data
}
