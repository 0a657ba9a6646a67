package service

import "errors"

var (
	// ErrNotFound is returned when a requested entity is absent.
	ErrNotFound = errors.New("not found")

	// ErrNotConfigured is returned when supplier sync is attempted for a
	// product without a supplier API endpoint.
	ErrNotConfigured = errors.New("supplier API not configured")

	// ErrInsufficientStock is returned when a movement would drive stock
	// quantity negative.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidTransition is returned for an illegal purchase order status
	// change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrRateUnavailable is returned when a conversion target currency is not
	// in the rate table.
	ErrRateUnavailable = errors.New("exchange rate not available")

	// ErrDuplicateSKU is returned when a product create reuses an existing SKU.
	ErrDuplicateSKU = errors.New("SKU already exists")

	// ErrInvalidCredentials is returned for failed logins.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
