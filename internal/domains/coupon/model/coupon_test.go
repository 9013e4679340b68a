package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func activeCoupon() *Coupon {
	now := time.Now()
	return &Coupon{
		Code:      "WELCOME10",
		Type:      DiscountTypePercentage,
		Value:     decimal.NewFromInt(10),
		IsActive:  true,
		StartsAt:  now.Add(-time.Hour),
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestCheckRedeemable(t *testing.T) {
	t.Parallel()
	now := time.Now()

	t.Run("valid coupon passes", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, activeCoupon().CheckRedeemable(now, "anyone@example.com"))
	})

	t.Run("inactive reads as not found", func(t *testing.T) {
		t.Parallel()
		c := activeCoupon()
		c.IsActive = false
		require.ErrorIs(t, c.CheckRedeemable(now, ""), ErrCouponNotFound)
	})

	t.Run("before window", func(t *testing.T) {
		t.Parallel()
		c := activeCoupon()
		c.StartsAt = now.Add(time.Hour)
		c.ExpiresAt = now.Add(2 * time.Hour)
		require.ErrorIs(t, c.CheckRedeemable(now, ""), ErrCouponNotStarted)
	})

	t.Run("after window", func(t *testing.T) {
		t.Parallel()
		c := activeCoupon()
		c.StartsAt = now.Add(-2 * time.Hour)
		c.ExpiresAt = now.Add(-time.Hour)
		require.ErrorIs(t, c.CheckRedeemable(now, ""), ErrCouponExpired)
	})

	t.Run("usage limit reached", func(t *testing.T) {
		t.Parallel()
		c := activeCoupon()
		limit := 5
		c.UsageLimit = &limit
		c.UsedCount = 5
		require.ErrorIs(t, c.CheckRedeemable(now, ""), ErrCouponLimitReached)
	})

	t.Run("under usage limit passes", func(t *testing.T) {
		t.Parallel()
		c := activeCoupon()
		limit := 5
		c.UsageLimit = &limit
		c.UsedCount = 4
		require.NoError(t, c.CheckRedeemable(now, ""))
	})

	t.Run("customer restriction rejects others", func(t *testing.T) {
		t.Parallel()
		c := activeCoupon()
		email := "vip@example.com"
		c.CustomerEmail = &email
		require.ErrorIs(t, c.CheckRedeemable(now, "someone@example.com"), ErrCouponNotAuthorized)
		require.NoError(t, c.CheckRedeemable(now, "VIP@example.com"))
	})
}

func TestCalculateDiscount(t *testing.T) {
	t.Parallel()

	t.Run("percentage", func(t *testing.T) {
		t.Parallel()
		c := &Coupon{Type: DiscountTypePercentage, Value: decimal.NewFromInt(10)}
		got := c.CalculateDiscount(decimal.NewFromInt(3000))
		require.True(t, got.Equal(decimal.NewFromInt(300)), "got %s", got)
	})

	t.Run("percentage rounds to cents", func(t *testing.T) {
		t.Parallel()
		c := &Coupon{Type: DiscountTypePercentage, Value: decimal.NewFromInt(15)}
		got := c.CalculateDiscount(decimal.RequireFromString("99.99"))
		require.True(t, got.Equal(decimal.RequireFromString("15.00")), "got %s", got)
	})

	t.Run("fixed amount", func(t *testing.T) {
		t.Parallel()
		c := &Coupon{Type: DiscountTypeFixedAmount, Value: decimal.NewFromInt(250)}
		got := c.CalculateDiscount(decimal.NewFromInt(3000))
		require.True(t, got.Equal(decimal.NewFromInt(250)), "got %s", got)
	})

	t.Run("fixed amount capped at subtotal", func(t *testing.T) {
		t.Parallel()
		c := &Coupon{Type: DiscountTypeFixedAmount, Value: decimal.NewFromInt(500)}
		got := c.CalculateDiscount(decimal.NewFromInt(120))
		require.True(t, got.Equal(decimal.NewFromInt(120)), "got %s", got)
	})
}

func TestNormalizeCode(t *testing.T) {
	t.Parallel()
	require.Equal(t, "WELCOME10", NormalizeCode("  welcome10 "))
}

func TestCampaignIsRunning(t *testing.T) {
	t.Parallel()
	now := time.Now()

	c := &Campaign{StartsAt: now.Add(-time.Hour), EndsAt: now.Add(time.Hour)}
	require.True(t, c.IsRunning(now))
	require.False(t, c.IsRunning(now.Add(2*time.Hour)))
	require.False(t, c.IsRunning(now.Add(-2*time.Hour)))
}
