package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"artstore-backend/internal/config"
	"artstore-backend/internal/shared"
)

func testRates() config.ShippingConfig {
	return config.ShippingConfig{
		BaseTRY:          decimal.NewFromInt(50),
		PerDesiTRY:       decimal.NewFromInt(10),
		FreeThresholdTRY: decimal.NewFromInt(2500),
		BaseUSD:          decimal.NewFromInt(12),
		PerDesiUSD:       decimal.NewFromInt(4),
		FreeThresholdUSD: decimal.NewFromInt(200),
	}
}

func TestEstimateTR(t *testing.T) {
	t.Parallel()
	e := NewShippingEstimator(testRates())

	t.Run("below threshold charges base plus per desi", func(t *testing.T) {
		t.Parallel()
		got := e.Estimate(shared.RegionTR, decimal.NewFromInt(1500), decimal.NewFromInt(5))
		require.True(t, got.Cost.Equal(decimal.NewFromInt(100)), "got %s", got.Cost)
		require.False(t, got.IsFree)
		require.Equal(t, "TRY", got.Currency)
	})

	t.Run("at threshold ships free", func(t *testing.T) {
		t.Parallel()
		got := e.Estimate(shared.RegionTR, decimal.NewFromInt(2500), decimal.NewFromInt(5))
		require.True(t, got.Cost.IsZero())
		require.True(t, got.IsFree)
	})

	t.Run("above threshold ships free", func(t *testing.T) {
		t.Parallel()
		got := e.Estimate(shared.RegionTR, decimal.NewFromInt(4000), decimal.NewFromInt(12))
		require.True(t, got.Cost.IsZero())
		require.True(t, got.IsFree)
	})

	t.Run("fractional desi rounds up", func(t *testing.T) {
		t.Parallel()
		got := e.Estimate(shared.RegionTR, decimal.NewFromInt(100), decimal.RequireFromString("2.3"))
		require.True(t, got.Cost.Equal(decimal.NewFromInt(80)), "got %s", got.Cost)
	})
}

func TestEstimateGlobal(t *testing.T) {
	t.Parallel()
	e := NewShippingEstimator(testRates())

	t.Run("below threshold", func(t *testing.T) {
		t.Parallel()
		got := e.Estimate(shared.RegionGlobal, decimal.NewFromInt(170), decimal.NewFromInt(3))
		require.True(t, got.Cost.Equal(decimal.NewFromInt(24)), "got %s", got.Cost)
		require.Equal(t, "USD", got.Currency)
	})

	t.Run("at threshold ships free", func(t *testing.T) {
		t.Parallel()
		got := e.Estimate(shared.RegionGlobal, decimal.NewFromInt(200), decimal.NewFromInt(3))
		require.True(t, got.Cost.IsZero())
		require.True(t, got.IsFree)
	})
}
