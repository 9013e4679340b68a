package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the admin payload for a new product with its
// initial variants.
type CreateProductRequest struct {
	Title       string                 `json:"title"`
	Description *string                `json:"description"`
	Artist      *string                `json:"artist"`
	ImageURL    *string                `json:"image_url"`
	IsActive    *bool                  `json:"is_active"`
	Variants    []CreateVariantRequest `json:"variants"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(2, 200)),
		validation.Field(&r.Variants, validation.Required, validation.Length(1, 50)),
	)
}

type CreateVariantRequest struct {
	Size          string          `json:"size"`
	Material      string          `json:"material"`
	PriceTRY      decimal.Decimal `json:"price_try"`
	PriceUSD      decimal.Decimal `json:"price_usd"`
	Desi          decimal.Decimal `json:"desi"`
	WeightKG      decimal.Decimal `json:"weight_kg"`
	Stock         int             `json:"stock"`
	SKU           *string         `json:"sku"`
	TrackQuantity *bool           `json:"track_quantity"`
}

func (r CreateVariantRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Size, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Material, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Stock, validation.Min(0)),
		validation.Field(&r.PriceTRY, validation.By(positiveDecimal)),
		validation.Field(&r.PriceUSD, validation.By(positiveDecimal)),
	)
}

func positiveDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || d.LessThanOrEqual(decimal.Zero) {
		return validation.NewError("validation_positive", "must be greater than zero")
	}
	return nil
}

type UpdateProductRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Artist      *string `json:"artist"`
	ImageURL    *string `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

func (r UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(2, 200)),
	)
}

// AdjustStockRequest sets or shifts a variant's stock counter.
type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

func (r AdjustStockRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Delta, validation.Required),
	)
}

// ProductListQuery carries pagination/filter for catalog listings.
type ProductListQuery struct {
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (q *ProductListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
}
