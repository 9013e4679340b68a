package model

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrVariantNotFound   = errors.New("product variant not found")
	ErrSlugAlreadyExists = errors.New("product slug already exists")
	ErrSKUAlreadyExists  = errors.New("variant sku already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)
