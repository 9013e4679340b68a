package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionTo(t *testing.T) {
	t.Parallel()

	allowed := []struct {
		from, to OrderStatus
	}{
		{StatusPending, StatusPaid},
		{StatusPending, StatusCancelled},
		{StatusPaid, StatusPreparing},
		{StatusPaid, StatusShipped},
		{StatusPaid, StatusCancelled},
		{StatusPaid, StatusRefunded},
		{StatusPreparing, StatusShipped},
		{StatusShipped, StatusDelivered},
		{StatusShipped, StatusRefunded},
		{StatusDelivered, StatusRefunded},
	}
	for _, tc := range allowed {
		require.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct {
		from, to OrderStatus
	}{
		{StatusPaid, StatusPending},
		{StatusShipped, StatusPreparing},
		{StatusShipped, StatusCancelled},
		{StatusDelivered, StatusShipped},
		{StatusCancelled, StatusPaid},
		{StatusCancelled, StatusRefunded},
		{StatusRefunded, StatusPaid},
		{StatusPending, StatusShipped},
	}
	for _, tc := range denied {
		require.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be denied", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	require.True(t, StatusCancelled.IsTerminal())
	require.True(t, StatusRefunded.IsTerminal())
	require.False(t, StatusPending.IsTerminal())
	require.False(t, StatusDelivered.IsTerminal())
}

func TestDeriveFulfillmentStatus(t *testing.T) {
	t.Parallel()

	items := func(specs ...[2]int) []OrderItem {
		var out []OrderItem
		for _, s := range specs {
			out = append(out, OrderItem{Quantity: s[0], FulfilledQty: s[1]})
		}
		return out
	}

	require.Equal(t, FulfillmentUnfulfilled, DeriveFulfillmentStatus(nil))
	require.Equal(t, FulfillmentUnfulfilled, DeriveFulfillmentStatus(items([2]int{2, 0}, [2]int{1, 0})))
	require.Equal(t, FulfillmentPartial, DeriveFulfillmentStatus(items([2]int{2, 2}, [2]int{1, 0})))
	require.Equal(t, FulfillmentPartial, DeriveFulfillmentStatus(items([2]int{3, 1})))
	require.Equal(t, FulfillmentFulfilled, DeriveFulfillmentStatus(items([2]int{2, 2}, [2]int{1, 1})))
}

func TestRefundableRemainder(t *testing.T) {
	t.Parallel()

	total := decimal.NewFromInt(1000)

	require.True(t, RefundableRemainder(total, nil).Equal(total))

	refunds := []Refund{{Amount: decimal.NewFromInt(400)}}
	require.True(t, RefundableRemainder(total, refunds).Equal(decimal.NewFromInt(600)))

	refunds = append(refunds, Refund{Amount: decimal.NewFromInt(600)})
	require.True(t, RefundableRemainder(total, refunds).Equal(decimal.Zero))

	// Over-refunded data clamps to zero instead of going negative.
	refunds = append(refunds, Refund{Amount: decimal.NewFromInt(50)})
	require.True(t, RefundableRemainder(total, refunds).Equal(decimal.Zero))
}

func TestOrderItemHelpers(t *testing.T) {
	t.Parallel()

	item := OrderItem{UnitPrice: decimal.NewFromInt(1500), Quantity: 2, FulfilledQty: 1}
	require.True(t, item.LineTotal().Equal(decimal.NewFromInt(3000)))
	require.Equal(t, 1, item.RemainingToFulfill())
}
