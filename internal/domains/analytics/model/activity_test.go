package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want Period
	}{
		{"", Period7d},
		{"7d", Period7d},
		{"30d", Period30d},
		{"all", PeriodAll},
	}
	for _, tc := range cases {
		got, err := ParsePeriod(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		require.Equal(t, tc.want, got)
	}

	_, err := ParsePeriod("90d")
	require.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestPeriodSince(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	require.Equal(t, now.AddDate(0, 0, -7), Period7d.Since(now))
	require.Equal(t, now.AddDate(0, 0, -30), Period30d.Since(now))
	require.True(t, PeriodAll.Since(now).IsZero())
}

func TestFunnelRates(t *testing.T) {
	t.Parallel()

	t.Run("conversion is purchases over views", func(t *testing.T) {
		t.Parallel()
		f := FunnelCounts{Views: 200, AddToCarts: 40, CheckoutStarts: 20, Purchases: 10}
		require.InDelta(t, 0.05, f.ConversionRate(), 1e-9)
	})

	t.Run("abandonment is carts that never purchased", func(t *testing.T) {
		t.Parallel()
		f := FunnelCounts{AddToCarts: 40, Purchases: 10}
		require.InDelta(t, 0.75, f.CartAbandonmentRate(), 1e-9)
	})

	t.Run("zero denominators yield zero", func(t *testing.T) {
		t.Parallel()
		var f FunnelCounts
		require.Zero(t, f.ConversionRate())
		require.Zero(t, f.CartAbandonmentRate())
	})

	t.Run("more purchases than carts clamps to zero", func(t *testing.T) {
		t.Parallel()
		f := FunnelCounts{AddToCarts: 5, Purchases: 8}
		require.Zero(t, f.CartAbandonmentRate())
	})
}

func TestIsValidEventType(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{EventView, EventAddToCart, EventCheckoutStart, EventPurchase} {
		require.True(t, IsValidEventType(valid))
	}
	require.False(t, IsValidEventType("page_load"))
}
