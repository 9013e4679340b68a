package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderInput is produced by the checkout flow. Unit prices carried
// here are the prices the customer saw; the order service re-reads the
// authoritative price inside the transaction and rejects drift.
type CreateOrderInput struct {
	Region          string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   *string
	ShippingAddress string
	ShippingCity    string
	ShippingCountry string
	Items           []CreateOrderItemInput
	CouponCode      *string
	ShippingCost    decimal.Decimal
}

// CreateOrderItemInput carries one cart line into placement.
// ExpectedUnitPrice is nil for back-office orders, which take the live
// price as-is instead of revalidating against a snapshot.
type CreateOrderItemInput struct {
	ProductID         uuid.UUID
	VariantID         uuid.UUID
	Title             string
	Quantity          int
	ExpectedUnitPrice *decimal.Decimal
}

// OrderTaskPayload is the asynq payload for order email jobs.
type OrderTaskPayload struct {
	OrderID uuid.UUID `json:"order_id"`
}

// OrderDetail bundles an order with its audit trail for the admin view.
type OrderDetail struct {
	Order        *Order        `json:"order"`
	Events       []OrderEvent  `json:"events"`
	Fulfillments []Fulfillment `json:"fulfillments"`
	Refunds      []Refund      `json:"refunds"`
}
