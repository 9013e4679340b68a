package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"artstore-backend/internal/shared"
)

// Product represents a piece in the catalog. Pricing and stock live on the
// variants; the product itself is presentational.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description,omitempty" db:"description"`
	Artist      *string   `json:"artist,omitempty" db:"artist"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	Variants []ProductVariant `json:"variants,omitempty"`
}

// ProductVariant is a sellable size/material combination with dual-currency
// pricing and its own stock counter.
type ProductVariant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Size      string    `json:"size" db:"size"`
	Material  string    `json:"material" db:"material"`

	PriceTRY decimal.Decimal `json:"price_try" db:"price_try"`
	PriceUSD decimal.Decimal `json:"price_usd" db:"price_usd"`

	// Desi is the volumetric weight unit used by Turkish carriers,
	// max(actual kg, w*l*h/3000). Used for the shipping estimate.
	Desi     decimal.Decimal `json:"desi" db:"desi"`
	WeightKG decimal.Decimal `json:"weight_kg" db:"weight_kg"`

	Stock         int     `json:"stock" db:"stock"`
	SKU           *string `json:"sku,omitempty" db:"sku"`
	TrackQuantity bool    `json:"track_quantity" db:"track_quantity"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PriceFor returns the unit price in the region's currency.
func (v *ProductVariant) PriceFor(region string) decimal.Decimal {
	if region == shared.RegionTR {
		return v.PriceTRY
	}
	return v.PriceUSD
}

// HasStock reports whether qty units can be sold. Variants that do not track
// quantity always have stock.
func (v *ProductVariant) HasStock(qty int) bool {
	if !v.TrackQuantity {
		return true
	}
	return v.Stock >= qty
}
