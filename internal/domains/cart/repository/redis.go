package repository

import (
	"context"
	"fmt"
	"time"

	"artstore-backend/internal/domains/cart/model"
	"artstore-backend/pkg/cache"
)

const (
	cartKeyPrefix = "cart:"
	cartTTL       = 30 * 24 * time.Hour // matches the session cookie lifetime
)

type redisRepository struct {
	cache cache.Cache
}

func NewRedisRepository(c cache.Cache) RepositoryInterface {
	return &redisRepository{cache: c}
}

func cartKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}

func (r *redisRepository) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	var cart model.Cart
	found, err := r.cache.Get(ctx, cartKey(sessionID), &cart)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if !found {
		return &model.Cart{SessionID: sessionID}, nil
	}

	cart.SessionID = sessionID
	return &cart, nil
}

func (r *redisRepository) Save(ctx context.Context, cart *model.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	if err := r.cache.Set(ctx, cartKey(cart.SessionID), cart, cartTTL); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *redisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.cache.Delete(ctx, cartKey(sessionID)); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
