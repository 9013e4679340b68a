package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus tracks the lifecycle of an order. Transitions only move
// forward; cancelled and refunded are terminal.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPaid      OrderStatus = "paid"
	StatusPreparing OrderStatus = "preparing"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
	StatusRefunded  OrderStatus = "refunded"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusPreparing, StatusShipped,
		StatusDelivered, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo enforces the forward-only lifecycle. Cancellation is open
// until the order ships; refunded is only reachable through the refund flow.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	allowed := map[OrderStatus][]OrderStatus{
		StatusPending:   {StatusPaid, StatusCancelled},
		StatusPaid:      {StatusPreparing, StatusShipped, StatusCancelled, StatusRefunded},
		StatusPreparing: {StatusShipped, StatusCancelled, StatusRefunded},
		StatusShipped:   {StatusDelivered, StatusRefunded},
		StatusDelivered: {StatusRefunded},
	}

	for _, n := range allowed[s] {
		if n == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusRefunded
}

// PaymentStatus tracks money, independently of shipping progress.
type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentPaid              PaymentStatus = "paid"
	PaymentFailed            PaymentStatus = "failed"
	PaymentPartiallyRefunded PaymentStatus = "partially_refunded"
	PaymentRefunded          PaymentStatus = "refunded"
)

// FulfillmentStatus is never stored as an independent fact; it is derived
// from fulfilled quantities so it cannot drift from the shipment records.
type FulfillmentStatus string

const (
	FulfillmentUnfulfilled FulfillmentStatus = "unfulfilled"
	FulfillmentPartial     FulfillmentStatus = "partial"
	FulfillmentFulfilled   FulfillmentStatus = "fulfilled"
)

type Order struct {
	ID                uuid.UUID         `json:"id" db:"id"`
	OrderNumber       string            `json:"order_number" db:"order_number"`
	Region            string            `json:"region" db:"region"`
	Currency          string            `json:"currency" db:"currency"`
	CustomerName      string            `json:"customer_name" db:"customer_name"`
	CustomerEmail     string            `json:"customer_email" db:"customer_email"`
	CustomerPhone     *string           `json:"customer_phone,omitempty" db:"customer_phone"`
	ShippingAddress   string            `json:"shipping_address" db:"shipping_address"`
	ShippingCity      string            `json:"shipping_city" db:"shipping_city"`
	ShippingCountry   string            `json:"shipping_country" db:"shipping_country"`
	Subtotal          decimal.Decimal   `json:"subtotal" db:"subtotal"`
	Discount          decimal.Decimal   `json:"discount" db:"discount"`
	CouponCode        *string           `json:"coupon_code,omitempty" db:"coupon_code"`
	ShippingCost      decimal.Decimal   `json:"shipping_cost" db:"shipping_cost"`
	Total             decimal.Decimal   `json:"total" db:"total"`
	Status            OrderStatus       `json:"status" db:"status"`
	PaymentStatus     PaymentStatus     `json:"payment_status" db:"payment_status"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillment_status" db:"-"`
	Items             []OrderItem       `json:"items,omitempty" db:"-"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// OrderItem is a priced snapshot of a variant at purchase time.
// FulfilledQty and RefundedQty are aggregates maintained alongside the
// fulfillment and refund records.
type OrderItem struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	OrderID      uuid.UUID       `json:"order_id" db:"order_id"`
	ProductID    uuid.UUID       `json:"product_id" db:"product_id"`
	VariantID    uuid.UUID       `json:"variant_id" db:"variant_id"`
	Title        string          `json:"title" db:"title"`
	Size         string          `json:"size" db:"size"`
	Material     string          `json:"material" db:"material"`
	SKU          string          `json:"sku" db:"sku"`
	UnitPrice    decimal.Decimal `json:"unit_price" db:"unit_price"`
	Quantity     int             `json:"quantity" db:"quantity"`
	Desi         decimal.Decimal `json:"desi" db:"desi"`
	FulfilledQty int             `json:"fulfilled_qty" db:"fulfilled_qty"`
	RefundedQty  int             `json:"refunded_qty" db:"refunded_qty"`
}

// LineTotal is unit price times quantity.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// RemainingToFulfill is how many units have not shipped yet.
func (i *OrderItem) RemainingToFulfill() int {
	return i.Quantity - i.FulfilledQty
}

// DeriveFulfillmentStatus computes the order level status from item
// aggregates. An order with no items counts as unfulfilled.
func DeriveFulfillmentStatus(items []OrderItem) FulfillmentStatus {
	if len(items) == 0 {
		return FulfillmentUnfulfilled
	}

	total, fulfilled := 0, 0
	for _, item := range items {
		total += item.Quantity
		fulfilled += item.FulfilledQty
	}

	switch {
	case fulfilled == 0:
		return FulfillmentUnfulfilled
	case fulfilled < total:
		return FulfillmentPartial
	default:
		return FulfillmentFulfilled
	}
}

// OrderEvent is an append-only audit record against an order.
type OrderEvent struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"order_id" db:"order_id"`
	Type      string    `json:"type" db:"type"`
	Note      *string   `json:"note,omitempty" db:"note"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Event types written by the order service.
const (
	EventOrderCreated       = "order_created"
	EventStatusChanged      = "status_changed"
	EventFulfillmentAdded   = "fulfillment_added"
	EventRefundIssued       = "refund_issued"
	EventConfirmationSent   = "confirmation_sent"
	EventShipmentNoticeSent = "shipment_notice_sent"
)

// Fulfillment records one shipment against an order.
type Fulfillment struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	OrderID         uuid.UUID         `json:"order_id" db:"order_id"`
	TrackingCompany string            `json:"tracking_company" db:"tracking_company"`
	TrackingNumber  string            `json:"tracking_number" db:"tracking_number"`
	TrackingURL     *string           `json:"tracking_url,omitempty" db:"tracking_url"`
	Items           []FulfillmentItem `json:"items,omitempty" db:"-"`
	ShippedAt       time.Time         `json:"shipped_at" db:"shipped_at"`
}

type FulfillmentItem struct {
	ID            uuid.UUID `json:"id" db:"id"`
	FulfillmentID uuid.UUID `json:"fulfillment_id" db:"fulfillment_id"`
	OrderItemID   uuid.UUID `json:"order_item_id" db:"order_item_id"`
	Quantity      int       `json:"quantity" db:"quantity"`
}

// Refund records money returned against an order, optionally tied to
// specific items. When RestockItems is set the refunded quantities go
// back into variant stock.
type Refund struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	OrderID      uuid.UUID       `json:"order_id" db:"order_id"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	Reason       *string         `json:"reason,omitempty" db:"reason"`
	RestockItems bool            `json:"restock_items" db:"restock_items"`
	Items        []RefundItem    `json:"items,omitempty" db:"-"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

type RefundItem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	RefundID    uuid.UUID `json:"refund_id" db:"refund_id"`
	OrderItemID uuid.UUID `json:"order_item_id" db:"order_item_id"`
	Quantity    int       `json:"quantity" db:"quantity"`
}

// RefundableRemainder is the order total minus everything already refunded.
// The server recomputes this on every refund; client supplied remainders are
// never trusted.
func RefundableRemainder(total decimal.Decimal, refunds []Refund) decimal.Decimal {
	remainder := total
	for _, r := range refunds {
		remainder = remainder.Sub(r.Amount)
	}
	if remainder.IsNegative() {
		return decimal.Zero
	}
	return remainder
}

// Customer is a roll-up across a customer's orders, keyed by email.
type Customer struct {
	Email      string          `json:"email" db:"email"`
	Name       string          `json:"name" db:"name"`
	OrderCount int             `json:"order_count" db:"order_count"`
	TotalSpent decimal.Decimal `json:"total_spent" db:"total_spent"`
	Currency   string          `json:"currency" db:"currency"`
	FirstOrder time.Time       `json:"first_order" db:"first_order"`
	LastOrder  time.Time       `json:"last_order" db:"last_order"`
}
