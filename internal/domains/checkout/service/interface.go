package service

import (
	"context"

	"github.com/google/uuid"

	"artstore-backend/internal/domains/checkout/model"
)

type ServiceInterface interface {
	// Checkout turns the session cart into a paid order and clears the
	// cart on success.
	Checkout(ctx context.Context, sessionID string, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	// EstimateShipping prices shipping for the current cart.
	EstimateShipping(ctx context.Context, sessionID, region string) (*model.ShippingEstimate, error)
}

// EventRecorder feeds the funnel without coupling checkout to the analytics
// domain. The analytics service satisfies it.
type EventRecorder interface {
	RecordCheckoutStart(ctx context.Context, sessionID string)
	RecordPurchase(ctx context.Context, sessionID string, orderID uuid.UUID)
}
