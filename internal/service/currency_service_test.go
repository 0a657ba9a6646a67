package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-inventory-erp/pkg/exchange"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRateFetcher struct {
	rates *exchange.Rates
	err   error
	calls int
}

func (f *fakeRateFetcher) Fetch(_ context.Context, base string) (*exchange.Rates, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

func TestConvertUsesFetchedRates(t *testing.T) {
	fetcher := &fakeRateFetcher{rates: &exchange.Rates{
		Base:  "USD",
		Rates: map[string]float64{"EUR": 0.9, "GBP": 0.8},
		Date:  "2026-08-29",
	}}
	svc := NewCurrencyService(fetcher)

	conversion, err := svc.Convert(context.Background(), 100, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 90.0, conversion.ConvertedAmount)
	assert.Equal(t, 0.9, conversion.Rate)
}

func TestConvertFallsBackWhenProviderUnreachable(t *testing.T) {
	fetcher := &fakeRateFetcher{err: errors.New("dial tcp: connection refused")}
	svc := NewCurrencyService(fetcher)

	conversion, err := svc.Convert(context.Background(), 100, "USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, 85.0, conversion.ConvertedAmount)
	assert.Equal(t, 0.85, conversion.Rate)
}

func TestConvertSameCurrencyIsIdentity(t *testing.T) {
	fetcher := &fakeRateFetcher{err: errors.New("unreachable")}
	svc := NewCurrencyService(fetcher)

	conversion, err := svc.Convert(context.Background(), 42.37, "USD", "USD")
	require.NoError(t, err)
	assert.Equal(t, 42.37, conversion.ConvertedAmount)
	assert.Equal(t, 1.0, conversion.Rate)
	// No provider call for an identity conversion
	assert.Zero(t, fetcher.calls)
}

func TestConvertUnknownTargetCurrency(t *testing.T) {
	fetcher := &fakeRateFetcher{rates: &exchange.Rates{
		Base:  "USD",
		Rates: map[string]float64{"EUR": 0.9},
	}}
	svc := NewCurrencyService(fetcher)

	_, err := svc.Convert(context.Background(), 100, "USD", "XXX")
	require.ErrorIs(t, err, ErrRateUnavailable)
}

func TestConvertRoundsToTwoDecimals(t *testing.T) {
	fetcher := &fakeRateFetcher{rates: &exchange.Rates{
		Base:  "USD",
		Rates: map[string]float64{"JPY": 110.337},
	}}
	svc := NewCurrencyService(fetcher)

	conversion, err := svc.Convert(context.Background(), 1.005, "USD", "JPY")
	require.NoError(t, err)
	assert.Equal(t, 110.89, conversion.ConvertedAmount)
}

func TestGetRatesCachesForOneHour(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeRateFetcher{rates: &exchange.Rates{
		Base:  "USD",
		Rates: map[string]float64{"EUR": 0.9},
	}}
	svc := NewCurrencyServiceWithClock(fetcher, func() time.Time { return now })

	_, err := svc.GetRates(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)

	// Within the TTL the cached table is served
	now = now.Add(59 * time.Minute)
	_, err = svc.GetRates(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls)

	// Past the TTL a fresh fetch happens
	now = now.Add(2 * time.Minute)
	_, err = svc.GetRates(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
}

func TestGetRatesDifferentBaseBypassesCache(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeRateFetcher{rates: &exchange.Rates{
		Base:  "USD",
		Rates: map[string]float64{"EUR": 0.9},
	}}
	svc := NewCurrencyServiceWithClock(fetcher, func() time.Time { return now })

	_, err := svc.GetRates(context.Background(), "USD")
	require.NoError(t, err)
	_, err = svc.GetRates(context.Background(), "EUR")
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
}

func TestGetRatesFallbackIsNotCached(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeRateFetcher{err: errors.New("unreachable")}
	svc := NewCurrencyServiceWithClock(fetcher, func() time.Time { return now })

	rates, err := svc.GetRates(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29", rates.Date)
	assert.Equal(t, 0.85, rates.Rates["EUR"])

	// A recovered provider is consulted on the very next call
	fetcher.err = nil
	fetcher.rates = &exchange.Rates{Base: "USD", Rates: map[string]float64{"EUR": 0.95}}
	rates, err = svc.GetRates(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, 0.95, rates.Rates["EUR"])
	assert.Equal(t, 2, fetcher.calls)
}
