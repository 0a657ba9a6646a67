package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go-inventory-erp/pkg/exchange"

	"github.com/rs/zerolog/log"
)

// rateCacheTTL bounds how long a fetched rate table is served.
const rateCacheTTL = time.Hour

// RateFetcher is the external exchange-rate provider collaborator.
type RateFetcher interface {
	Fetch(ctx context.Context, baseCurrency string) (*exchange.Rates, error)
}

// Conversion is the result of a currency conversion, rounded to 2 decimals.
type Conversion struct {
	ConvertedAmount float64 `json:"converted_amount"`
	Rate            float64 `json:"rate"`
}

type CurrencyService interface {
	GetRates(ctx context.Context, baseCurrency string) (*exchange.Rates, error)
	Convert(ctx context.Context, amount float64, from, to string) (*Conversion, error)
}

type currencyService struct {
	fetcher RateFetcher
	now     func() time.Time

	mu        sync.Mutex
	cached    *exchange.Rates
	fetchedAt time.Time
}

func NewCurrencyService(fetcher RateFetcher) CurrencyService {
	return &currencyService{
		fetcher: fetcher,
		now:     time.Now,
	}
}

// NewCurrencyServiceWithClock injects the clock for cache-expiry tests.
func NewCurrencyServiceWithClock(fetcher RateFetcher, now func() time.Time) CurrencyService {
	return &currencyService{
		fetcher: fetcher,
		now:     now,
	}
}

// fallbackRates is served when the provider is unreachable, dated today.
func fallbackRates(baseCurrency string, now time.Time) *exchange.Rates {
	return &exchange.Rates{
		Base: baseCurrency,
		Rates: map[string]float64{
			"USD": 1, "EUR": 0.85, "GBP": 0.73, "JPY": 110.0,
			"CAD": 1.25, "AUD": 1.35, "INR": 83.0, "CNY": 7.1,
		},
		Date: now.Format("2006-01-02"),
	}
}

// GetRates returns the cached table when it is younger than one hour and has
// the same base; otherwise it fetches. Provider failures fall back to the
// fixed table and are not cached.
func (s *currencyService) GetRates(ctx context.Context, baseCurrency string) (*exchange.Rates, error) {
	if baseCurrency == "" {
		baseCurrency = "USD"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.cached != nil && s.cached.Base == baseCurrency && now.Sub(s.fetchedAt) < rateCacheTTL {
		return s.cached, nil
	}

	rates, err := s.fetcher.Fetch(ctx, baseCurrency)
	if err != nil {
		log.Warn().Err(err).Str("base", baseCurrency).Msg("rate provider unreachable, using fallback table")
		return fallbackRates(baseCurrency, now), nil
	}

	s.cached = rates
	s.fetchedAt = now
	return rates, nil
}

// Convert converts amount from one currency to another with half-up
// financial rounding to 2 decimal places.
func (s *currencyService) Convert(ctx context.Context, amount float64, from, to string) (*Conversion, error) {
	if from == to {
		return &Conversion{ConvertedAmount: amount, Rate: 1}, nil
	}

	rates, err := s.GetRates(ctx, from)
	if err != nil {
		return nil, err
	}

	rate, ok := rates.Rates[to]
	if !ok || rate == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRateUnavailable, to)
	}

	return &Conversion{
		ConvertedAmount: math.Round(amount*rate*100) / 100,
		Rate:            rate,
	}, nil
}
