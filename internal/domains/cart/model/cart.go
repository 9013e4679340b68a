package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"artstore-backend/internal/shared"
)

// CartItem is a line in the session cart. Prices are a snapshot taken at
// add-to-cart time; the order service re-validates them at checkout.
type CartItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	VariantID uuid.UUID       `json:"variant_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Material  string          `json:"material"`
	PriceTRY  decimal.Decimal `json:"price_try"`
	PriceUSD  decimal.Decimal `json:"price_usd"`
	Desi      decimal.Decimal `json:"desi"`
	WeightKG  decimal.Decimal `json:"weight_kg"`
	Quantity  int             `json:"quantity"`
}

// CartItemID is the merge key: one line per product+variant combination.
func (i *CartItem) CartItemID() string {
	return fmt.Sprintf("%s:%s", i.ProductID, i.VariantID)
}

// PriceFor returns the line's unit price in the region's currency.
func (i *CartItem) PriceFor(region string) decimal.Decimal {
	if region == shared.RegionTR {
		return i.PriceTRY
	}
	return i.PriceUSD
}

// Cart is the session-held item list. Only the items survive a reload;
// UI state never reaches the server.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Add merges the quantity into an existing line when product+variant match,
// otherwise appends a new line.
func (c *Cart) Add(item CartItem) {
	for idx := range c.Items {
		if c.Items[idx].CartItemID() == item.CartItemID() {
			c.Items[idx].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity overwrites the quantity of the matching line.
func (c *Cart) UpdateQuantity(cartItemID string, qty int) error {
	for idx := range c.Items {
		if c.Items[idx].CartItemID() == cartItemID {
			c.Items[idx].Quantity = qty
			return nil
		}
	}
	return ErrItemNotInCart
}

// Remove deletes the matching line.
func (c *Cart) Remove(cartItemID string) error {
	for idx := range c.Items {
		if c.Items[idx].CartItemID() == cartItemID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return nil
		}
	}
	return ErrItemNotInCart
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// CartTotals is the result of a pure read over the item list.
type CartTotals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Currency  string          `json:"currency"`
	ItemCount int             `json:"item_count"`
	TotalDesi decimal.Decimal `json:"total_desi"`
}

// Totals sums quantity x region price over all lines. Idempotent, no side
// effects.
func (c *Cart) Totals(region string) CartTotals {
	totals := CartTotals{
		Subtotal:  decimal.Zero,
		Currency:  shared.CurrencyForRegion(region),
		TotalDesi: decimal.Zero,
	}

	for _, item := range c.Items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		totals.Subtotal = totals.Subtotal.Add(item.PriceFor(region).Mul(qty))
		totals.TotalDesi = totals.TotalDesi.Add(item.Desi.Mul(qty))
		totals.ItemCount += item.Quantity
	}

	return totals
}
