package service

import (
	"context"

	"github.com/google/uuid"

	"artstore-backend/internal/domains/cart/model"
)

type ServiceInterface interface {
	Get(ctx context.Context, sessionID, region string) (*model.CartResponse, error)
	AddItem(ctx context.Context, sessionID, region string, req *model.AddItemRequest) (*model.CartResponse, error)
	UpdateItem(ctx context.Context, sessionID, region, cartItemID string, qty int) (*model.CartResponse, error)
	RemoveItem(ctx context.Context, sessionID, region, cartItemID string) (*model.CartResponse, error)
	Clear(ctx context.Context, sessionID string) error

	// GetRaw returns the stored cart without view decoration, for checkout.
	GetRaw(ctx context.Context, sessionID string) (*model.Cart, error)
}

// EventRecorder decouples the cart from the analytics domain. The analytics
// service satisfies it.
type EventRecorder interface {
	RecordAddToCart(ctx context.Context, sessionID string, productID uuid.UUID, quantity int)
}
