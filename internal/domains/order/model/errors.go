package model

import "errors"

var (
	ErrOrderNotFound           = errors.New("order not found")
	ErrOrderItemNotFound       = errors.New("order item not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrOrderTerminal           = errors.New("order is in a terminal status")
	ErrExcessiveFulfillment    = errors.New("fulfillment exceeds remaining quantity")
	ErrRefundExceedsRemainder  = errors.New("refund exceeds refundable remainder")
	ErrNothingToRefund         = errors.New("nothing left to refund")
	ErrPriceChanged            = errors.New("a price changed since the cart was built")
)
