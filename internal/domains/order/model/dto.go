package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Note   *string `json:"note,omitempty"`
}

func (r UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.By(validStatus)),
	)
}

func validStatus(value interface{}) error {
	s, ok := value.(string)
	if !ok || !OrderStatus(s).IsValid() {
		return validation.NewError("validation_status", "must be a known order status")
	}
	return nil
}

type FulfillRequest struct {
	TrackingCompany string            `json:"tracking_company"`
	TrackingNumber  string            `json:"tracking_number"`
	TrackingURL     *string           `json:"tracking_url,omitempty"`
	NotifyCustomer  bool              `json:"notify_customer"`
	Items           []FulfillItemSpec `json:"items"`
}

type FulfillItemSpec struct {
	OrderItemID uuid.UUID `json:"order_item_id"`
	Quantity    int       `json:"quantity"`
}

func (r FulfillRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.TrackingCompany, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.TrackingNumber, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.TrackingURL, is.URL),
		validation.Field(&r.Items, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Items, validation.Each(validation.By(validFulfillItem))),
	)
}

func validFulfillItem(value interface{}) error {
	item, ok := value.(FulfillItemSpec)
	if !ok {
		return validation.NewError("validation_item", "invalid item")
	}
	if item.OrderItemID == uuid.Nil {
		return validation.NewError("validation_item", "order_item_id is required")
	}
	if item.Quantity < 1 {
		return validation.NewError("validation_item", "quantity must be at least 1")
	}
	return nil
}

type RefundRequest struct {
	Amount       decimal.Decimal  `json:"amount"`
	Reason       *string          `json:"reason,omitempty"`
	RestockItems bool             `json:"restock_items"`
	Items        []RefundItemSpec `json:"items,omitempty"`
}

type RefundItemSpec struct {
	OrderItemID uuid.UUID `json:"order_item_id"`
	Quantity    int       `json:"quantity"`
}

func (r RefundRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Amount, validation.By(positiveAmount)),
		validation.Field(&r.Items, validation.Each(validation.By(validRefundItem))),
	)
}

func positiveAmount(value interface{}) error {
	v, ok := value.(decimal.Decimal)
	if !ok || v.LessThanOrEqual(decimal.Zero) {
		return validation.NewError("validation_amount", "must be greater than zero")
	}
	return nil
}

func validRefundItem(value interface{}) error {
	item, ok := value.(RefundItemSpec)
	if !ok {
		return validation.NewError("validation_item", "invalid item")
	}
	if item.OrderItemID == uuid.Nil {
		return validation.NewError("validation_item", "order_item_id is required")
	}
	if item.Quantity < 1 {
		return validation.NewError("validation_item", "quantity must be at least 1")
	}
	return nil
}

// AdminCreateOrderRequest places an order on a customer's behalf from the
// back office (phone orders, gallery sales). Prices come from the live
// catalog rather than a storefront snapshot.
type AdminCreateOrderRequest struct {
	Region          string               `json:"region"`
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   string               `json:"customer_email"`
	CustomerPhone   *string              `json:"customer_phone,omitempty"`
	ShippingAddress string               `json:"shipping_address"`
	ShippingCity    string               `json:"shipping_city"`
	ShippingCountry string               `json:"shipping_country"`
	Items           []AdminOrderItemSpec `json:"items"`
	CouponCode      *string              `json:"coupon_code,omitempty"`
	ShippingCost    decimal.Decimal      `json:"shipping_cost"`
	Status          string               `json:"status,omitempty"`
}

type AdminOrderItemSpec struct {
	ProductID uuid.UUID `json:"product_id"`
	VariantID uuid.UUID `json:"variant_id"`
	Quantity  int       `json:"quantity"`
}

func (r AdminCreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Region, validation.Required, validation.In("TR", "GLOBAL")),
		validation.Field(&r.CustomerName, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.CustomerEmail, validation.Required, is.Email),
		validation.Field(&r.ShippingAddress, validation.Required, validation.Length(5, 500)),
		validation.Field(&r.ShippingCity, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.ShippingCountry, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Items, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Items, validation.Each(validation.By(validAdminOrderItem))),
		validation.Field(&r.ShippingCost, validation.By(nonNegativeAmount)),
		validation.Field(&r.Status, validation.In(string(StatusPending), string(StatusPaid))),
	)
}

func validAdminOrderItem(value interface{}) error {
	item, ok := value.(AdminOrderItemSpec)
	if !ok {
		return validation.NewError("validation_item", "invalid item")
	}
	if item.ProductID == uuid.Nil || item.VariantID == uuid.Nil {
		return validation.NewError("validation_item", "product_id and variant_id are required")
	}
	if item.Quantity < 1 {
		return validation.NewError("validation_item", "quantity must be at least 1")
	}
	return nil
}

func nonNegativeAmount(value interface{}) error {
	v, ok := value.(decimal.Decimal)
	if !ok || v.IsNegative() {
		return validation.NewError("validation_amount", "must not be negative")
	}
	return nil
}

// OrderListQuery filters the admin order list.
type OrderListQuery struct {
	Status string `form:"status"`
	Region string `form:"region"`
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (q *OrderListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
}
