package model

import "errors"

var (
	ErrCartEmpty       = errors.New("cart is empty")
	ErrItemNotInCart   = errors.New("item not in cart")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)
