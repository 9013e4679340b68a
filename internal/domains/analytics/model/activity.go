package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types accepted by the activity log.
const (
	EventView          = "view"
	EventAddToCart     = "add_to_cart"
	EventCheckoutStart = "checkout_start"
	EventPurchase      = "purchase"
)

func IsValidEventType(t string) bool {
	switch t {
	case EventView, EventAddToCart, EventCheckoutStart, EventPurchase:
		return true
	}
	return false
}

// ActivityLog is one funnel event. Rows are append-only and aged out by the
// nightly purge job.
type ActivityLog struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	SessionID string     `json:"session_id" db:"session_id"`
	EventType string     `json:"event_type" db:"event_type"`
	ProductID *uuid.UUID `json:"product_id,omitempty" db:"product_id"`
	OrderID   *uuid.UUID `json:"order_id,omitempty" db:"order_id"`
	Quantity  *int       `json:"quantity,omitempty" db:"quantity"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// FunnelCounts are raw event totals over a period.
type FunnelCounts struct {
	Views          int `json:"views"`
	AddToCarts     int `json:"add_to_carts"`
	CheckoutStarts int `json:"checkout_starts"`
	Purchases      int `json:"purchases"`
}

// ConversionRate is purchases over views. Zero views means zero rate, not a
// division error.
func (f FunnelCounts) ConversionRate() float64 {
	if f.Views == 0 {
		return 0
	}
	return float64(f.Purchases) / float64(f.Views)
}

// CartAbandonmentRate is the share of carts that never reached purchase.
func (f FunnelCounts) CartAbandonmentRate() float64 {
	if f.AddToCarts == 0 {
		return 0
	}
	rate := 1 - float64(f.Purchases)/float64(f.AddToCarts)
	if rate < 0 {
		return 0
	}
	return rate
}

// RevenueStat aggregates paid orders for one currency. Revenue always comes
// from the orders table, never from purchase events, so the two sources
// cannot disagree.
type RevenueStat struct {
	Currency   string          `json:"currency"`
	OrderCount int             `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// ProductViewStat is one row of the most-viewed list.
type ProductViewStat struct {
	ProductID uuid.UUID `json:"product_id"`
	Title     string    `json:"title"`
	Views     int       `json:"views"`
}

// DailyStat is one day of the time series.
type DailyStat struct {
	Day       time.Time `json:"day"`
	Views     int       `json:"views"`
	Purchases int       `json:"purchases"`
}

// StatsResponse is the admin dashboard payload.
type StatsResponse struct {
	Period              string            `json:"period"`
	Funnel              FunnelCounts      `json:"funnel"`
	ConversionRate      float64           `json:"conversion_rate"`
	CartAbandonmentRate float64           `json:"cart_abandonment_rate"`
	Revenue             []RevenueStat     `json:"revenue"`
	TopProducts         []ProductViewStat `json:"top_products"`
	Daily               []DailyStat       `json:"daily"`
}

// AbandonedSession is a cart session with activity but no purchase.
type AbandonedSession struct {
	SessionID    string    `json:"session_id"`
	LastActivity time.Time `json:"last_activity"`
	CartAdds     int       `json:"cart_adds"`
}
