package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	all := []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered}
	allowed := map[[2]OrderStatus]bool{
		{OrderPending, OrderProcessing}: true,
		{OrderProcessing, OrderShipped}: true,
		{OrderShipped, OrderDelivered}:  true,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]OrderStatus{from, to}]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestOrderStatus_Next(t *testing.T) {
	next, ok := OrderPending.Next()
	assert.True(t, ok)
	assert.Equal(t, OrderProcessing, next)

	_, ok = OrderDelivered.Next()
	assert.False(t, ok, "delivered is terminal")
}

func TestParseOrderStatus(t *testing.T) {
	s, ok := ParseOrderStatus("Shipped")
	assert.True(t, ok)
	assert.Equal(t, OrderShipped, s)

	_, ok = ParseOrderStatus("shipped")
	assert.False(t, ok, "status labels are case sensitive")

	_, ok = ParseOrderStatus("Cancelled")
	assert.False(t, ok)
}

func TestParseStockStatus(t *testing.T) {
	s, ok := ParseStockStatus("")
	assert.True(t, ok)
	assert.Equal(t, StockInStock, s)

	s, ok = ParseStockStatus("Upcoming")
	assert.True(t, ok)
	assert.Equal(t, StockUpcoming, s)

	_, ok = ParseStockStatus("Backorder")
	assert.False(t, ok)
}

func TestInvalid_UnwrapsToErrValidation(t *testing.T) {
	err := Invalid("name is required")
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "name is required")
}
