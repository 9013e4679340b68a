package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func (r AddItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required, is.UUID),
		validation.Field(&r.VariantID, validation.Required, is.UUID),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

// CartResponse is the cart plus its totals for the requested region.
type CartResponse struct {
	Items  []CartItemView `json:"items"`
	Totals CartTotals     `json:"totals"`
}

// CartItemView decorates a CartItem with its merge key so the client can
// address lines on update/remove.
type CartItemView struct {
	CartItemID string `json:"cart_item_id"`
	CartItem
}

func NewCartResponse(cart *Cart, region string) *CartResponse {
	items := make([]CartItemView, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemView{
			CartItemID: item.CartItemID(),
			CartItem:   item,
		})
	}

	return &CartResponse{
		Items:  items,
		Totals: cart.Totals(region),
	}
}
