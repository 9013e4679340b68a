package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ValidateCouponRequest struct {
	Code          string          `json:"code"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	CustomerEmail string          `json:"customer_email"`
}

func (r ValidateCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(2, 64)),
		validation.Field(&r.Subtotal, validation.By(nonNegativeDecimal)),
		validation.Field(&r.CustomerEmail, is.Email),
	)
}

type CreateCouponRequest struct {
	Code          string          `json:"code"`
	Type          string          `json:"type"`
	Value         decimal.Decimal `json:"value"`
	StartsAt      time.Time       `json:"starts_at"`
	ExpiresAt     time.Time       `json:"expires_at"`
	UsageLimit    *int            `json:"usage_limit,omitempty"`
	CustomerEmail *string         `json:"customer_email,omitempty"`
}

func (r CreateCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required, validation.Length(2, 64)),
		validation.Field(&r.Type, validation.Required,
			validation.In(string(DiscountTypePercentage), string(DiscountTypeFixedAmount))),
		validation.Field(&r.Value, validation.By(r.validateValue)),
		validation.Field(&r.StartsAt, validation.Required),
		validation.Field(&r.ExpiresAt, validation.Required, validation.By(r.validateWindow)),
		validation.Field(&r.UsageLimit, validation.Min(1)),
		validation.Field(&r.CustomerEmail, validation.By(optionalEmail)),
	)
}

func (r CreateCouponRequest) validateValue(value interface{}) error {
	v, ok := value.(decimal.Decimal)
	if !ok || v.LessThanOrEqual(decimal.Zero) {
		return validation.NewError("validation_value", "must be greater than zero")
	}
	if r.Type == string(DiscountTypePercentage) && v.GreaterThan(decimal.NewFromInt(100)) {
		return validation.NewError("validation_percentage", "must not exceed 100")
	}
	return nil
}

func (r CreateCouponRequest) validateWindow(value interface{}) error {
	expiresAt, ok := value.(time.Time)
	if !ok || !expiresAt.After(r.StartsAt) {
		return validation.NewError("validation_window", "must be after starts_at")
	}
	return nil
}

type UpdateCouponRequest struct {
	Value      *decimal.Decimal `json:"value,omitempty"`
	IsActive   *bool            `json:"is_active,omitempty"`
	StartsAt   *time.Time       `json:"starts_at,omitempty"`
	ExpiresAt  *time.Time       `json:"expires_at,omitempty"`
	UsageLimit *int             `json:"usage_limit,omitempty"`
}

func (r UpdateCouponRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Value, validation.By(optionalPositiveDecimal)),
		validation.Field(&r.UsageLimit, validation.Min(1)),
	)
}

type CreateCampaignRequest struct {
	Title     string     `json:"title"`
	BannerURL *string    `json:"banner_url,omitempty"`
	StartsAt  time.Time  `json:"starts_at"`
	EndsAt    time.Time  `json:"ends_at"`
	CouponID  *uuid.UUID `json:"coupon_id,omitempty"`
}

func (r CreateCampaignRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.BannerURL, validation.By(optionalURL)),
		validation.Field(&r.StartsAt, validation.Required),
		validation.Field(&r.EndsAt, validation.Required, validation.By(r.validateWindow)),
	)
}

func (r CreateCampaignRequest) validateWindow(value interface{}) error {
	endsAt, ok := value.(time.Time)
	if !ok || !endsAt.After(r.StartsAt) {
		return validation.NewError("validation_window", "must be after starts_at")
	}
	return nil
}

// CouponQuote is the priced result of a successful validation.
type CouponQuote struct {
	Code     string          `json:"code"`
	Type     DiscountType    `json:"type"`
	Value    decimal.Decimal `json:"value"`
	Discount decimal.Decimal `json:"discount"`
}

func nonNegativeDecimal(value interface{}) error {
	v, ok := value.(decimal.Decimal)
	if !ok || v.IsNegative() {
		return validation.NewError("validation_decimal", "must be zero or greater")
	}
	return nil
}

func optionalPositiveDecimal(value interface{}) error {
	v, ok := value.(*decimal.Decimal)
	if !ok || v == nil {
		return nil
	}
	if v.LessThanOrEqual(decimal.Zero) {
		return validation.NewError("validation_decimal", "must be greater than zero")
	}
	return nil
}

func optionalEmail(value interface{}) error {
	v, ok := value.(*string)
	if !ok || v == nil {
		return nil
	}
	return is.Email.Validate(*v)
}

func optionalURL(value interface{}) error {
	v, ok := value.(*string)
	if !ok || v == nil {
		return nil
	}
	return is.URL.Validate(*v)
}
