package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountType enumerates coupon kinds.
type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
)

func (d DiscountType) IsValid() bool {
	return d == DiscountTypePercentage || d == DiscountTypeFixedAmount
}

// Coupon is a promo code. CustomerEmail, when set, restricts redemption to
// that customer. UsedCount is only ever advanced by the conditional redeem
// inside the order transaction.
type Coupon struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	Code          string          `json:"code" db:"code"`
	Type          DiscountType    `json:"type" db:"type"`
	Value         decimal.Decimal `json:"value" db:"value"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	StartsAt      time.Time       `json:"starts_at" db:"starts_at"`
	ExpiresAt     time.Time       `json:"expires_at" db:"expires_at"`
	UsageLimit    *int            `json:"usage_limit,omitempty" db:"usage_limit"`
	UsedCount     int             `json:"used_count" db:"used_count"`
	CustomerEmail *string         `json:"customer_email,omitempty" db:"customer_email"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// NormalizeCode uppercases and trims a user-supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CheckRedeemable evaluates the coupon against the clock and the requesting
// customer. The checks run in a fixed order so the client always sees the
// most specific failure.
func (c *Coupon) CheckRedeemable(now time.Time, customerEmail string) error {
	if !c.IsActive {
		// Inactive codes are indistinguishable from missing ones.
		return ErrCouponNotFound
	}
	if now.Before(c.StartsAt) {
		return ErrCouponNotStarted
	}
	if now.After(c.ExpiresAt) {
		return ErrCouponExpired
	}
	if c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit {
		return ErrCouponLimitReached
	}
	if c.CustomerEmail != nil && !strings.EqualFold(*c.CustomerEmail, customerEmail) {
		return ErrCouponNotAuthorized
	}
	return nil
}

// CalculateDiscount computes the discount for a subtotal. Fixed-amount
// discounts are capped at the subtotal; results are rounded to 2 places.
func (c *Coupon) CalculateDiscount(subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal

	switch c.Type {
	case DiscountTypePercentage:
		discount = subtotal.Mul(c.Value).Div(decimal.NewFromInt(100))
	case DiscountTypeFixedAmount:
		discount = c.Value
		if discount.GreaterThan(subtotal) {
			discount = subtotal
		}
	default:
		return decimal.Zero
	}

	return discount.Round(2)
}

// Campaign is a presentational grouping around a coupon.
type Campaign struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Slug      string     `json:"slug" db:"slug"`
	BannerURL *string    `json:"banner_url,omitempty" db:"banner_url"`
	StartsAt  time.Time  `json:"starts_at" db:"starts_at"`
	EndsAt    time.Time  `json:"ends_at" db:"ends_at"`
	CouponID  *uuid.UUID `json:"coupon_id,omitempty" db:"coupon_id"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// IsRunning reports whether the campaign is inside its display window.
func (c *Campaign) IsRunning(now time.Time) bool {
	return !now.Before(c.StartsAt) && !now.After(c.EndsAt)
}
