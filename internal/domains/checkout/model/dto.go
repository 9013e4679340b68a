package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"

	orderModel "artstore-backend/internal/domains/order/model"
	"artstore-backend/internal/shared"
)

type CheckoutRequest struct {
	Region          string  `json:"region"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   *string `json:"customer_phone,omitempty"`
	ShippingAddress string  `json:"shipping_address"`
	ShippingCity    string  `json:"shipping_city"`
	ShippingCountry string  `json:"shipping_country"`
	CouponCode      *string `json:"coupon_code,omitempty"`
}

func (r CheckoutRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Region, validation.Required,
			validation.In(shared.RegionTR, shared.RegionGlobal)),
		validation.Field(&r.CustomerName, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.CustomerEmail, validation.Required, is.Email),
		validation.Field(&r.ShippingAddress, validation.Required, validation.Length(5, 500)),
		validation.Field(&r.ShippingCity, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.ShippingCountry, validation.Required, validation.Length(2, 100)),
	)
}

type CheckoutResponse struct {
	Order      *orderModel.Order `json:"order"`
	PaymentRef string            `json:"payment_ref"`
}

// ShippingEstimate is what the storefront shows before checkout.
type ShippingEstimate struct {
	Region        string          `json:"region"`
	Currency      string          `json:"currency"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalDesi     decimal.Decimal `json:"total_desi"`
	Cost          decimal.Decimal `json:"cost"`
	FreeThreshold decimal.Decimal `json:"free_threshold"`
	IsFree        bool            `json:"is_free"`
}
