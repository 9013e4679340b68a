package service

import (
	"context"

	"github.com/google/uuid"

	"artstore-backend/internal/domains/analytics/model"
)

type ServiceInterface interface {
	// RecordEvent stores a storefront-reported funnel event.
	RecordEvent(ctx context.Context, sessionID string, req *model.RecordEventRequest) error

	// Stats builds the admin dashboard for a 7d, 30d or all-time window.
	Stats(ctx context.Context, period string) (*model.StatsResponse, error)

	// AbandonedSessions lists carts abandoned in the last seven days.
	AbandonedSessions(ctx context.Context) ([]model.AbandonedSession, error)

	// Purge removes events older than the retention window. Invoked by the
	// scheduled job.
	Purge(ctx context.Context, retentionDays int) (int, error)

	// Server-side hooks for the cart and checkout services. Best effort;
	// they log failures instead of returning them.
	RecordAddToCart(ctx context.Context, sessionID string, productID uuid.UUID, quantity int)
	RecordCheckoutStart(ctx context.Context, sessionID string)
	RecordPurchase(ctx context.Context, sessionID string, orderID uuid.UUID)
}
