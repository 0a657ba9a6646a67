// Package exchange fetches base-currency rate tables from an external
// exchange-rate provider.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

const defaultAPIURL = "https://api.exchangerate-api.com/v4/latest"

// Rates is a rate table for a single base currency.
type Rates struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
	Date  string             `json:"date"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient reads EXCHANGE_RATE_API_URL, falling back to the public provider.
func NewClient() *Client {
	baseURL := os.Getenv("EXCHANGE_RATE_API_URL")
	if baseURL == "" {
		baseURL = defaultAPIURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func NewClientWithURL(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Fetch(ctx context.Context, baseCurrency string) (*Rates, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, baseCurrency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("exchange rates: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exchange rates: provider returned %d", resp.StatusCode)
	}

	var rates Rates
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return nil, fmt.Errorf("exchange rates: invalid payload: %w", err)
	}
	return &rates, nil
}
