package repository

import (
	"context"

	"artstore-backend/internal/domains/cart/model"
)

// RepositoryInterface stores session carts. Carts are ephemeral client
// state, so they live in Redis with a TTL, not in Postgres.
type RepositoryInterface interface {
	// Get returns the session's cart, or an empty cart when none exists.
	Get(ctx context.Context, sessionID string) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
