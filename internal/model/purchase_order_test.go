package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseOrderTransitions(t *testing.T) {
	cases := []struct {
		from    PurchaseOrderStatus
		to      PurchaseOrderStatus
		allowed bool
	}{
		{POStatusPending, POStatusApproved, true},
		{POStatusPending, POStatusCancelled, true},
		{POStatusPending, POStatusReceived, false},
		{POStatusPending, POStatusPending, false},
		{POStatusApproved, POStatusReceived, true},
		{POStatusApproved, POStatusCancelled, false},
		{POStatusApproved, POStatusPending, false},
		{POStatusReceived, POStatusPending, false},
		{POStatusReceived, POStatusApproved, false},
		{POStatusReceived, POStatusCancelled, false},
		{POStatusCancelled, POStatusPending, false},
		{POStatusCancelled, POStatusApproved, false},
		{POStatusCancelled, POStatusReceived, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPurchaseOrderStatusValid(t *testing.T) {
	for _, s := range []PurchaseOrderStatus{POStatusPending, POStatusApproved, POStatusReceived, POStatusCancelled} {
		assert.True(t, s.Valid())
	}
	assert.False(t, PurchaseOrderStatus("SHIPPED").Valid())
	assert.False(t, PurchaseOrderStatus("").Valid())
}

func TestIsLowStockStrict(t *testing.T) {
	p := Product{StockQty: 9, MinStockLevel: 10}
	assert.True(t, p.IsLowStock())

	p.StockQty = 10
	assert.False(t, p.IsLowStock())

	p.StockQty = 11
	assert.False(t, p.IsLowStock())
}

func TestStockLogSignedQuantity(t *testing.T) {
	assert.Equal(t, 5, (&StockLog{Type: StockIn, Quantity: 5}).SignedQuantity())
	assert.Equal(t, -5, (&StockLog{Type: StockOut, Quantity: 5}).SignedQuantity())
	assert.Equal(t, 5, (&StockLog{Type: StockAdjustment, Quantity: 5}).SignedQuantity())
}
