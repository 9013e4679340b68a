package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"artstore-backend/pkg/logger"
)

type ChargeResult struct {
	Reference string
	ChargedAt time.Time
}

// Gateway charges a customer. Implementations must respect context
// cancellation; a checkout abandoned mid-charge should not hang.
type Gateway interface {
	Charge(ctx context.Context, amount decimal.Decimal, currency, reference string) (*ChargeResult, error)
}

// simulatedGateway approves every charge after a short processing delay.
// It stands in for a PSP integration in development and tests.
type simulatedGateway struct {
	delay time.Duration
}

func NewSimulatedGateway(delay time.Duration) Gateway {
	return &simulatedGateway{delay: delay}
}

func (g *simulatedGateway) Charge(ctx context.Context, amount decimal.Decimal, currency, reference string) (*ChargeResult, error) {
	if g.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("charge cancelled: %w", ctx.Err())
		case <-time.After(g.delay):
		}
	}

	result := &ChargeResult{
		Reference: "sim_" + uuid.NewString(),
		ChargedAt: time.Now(),
	}

	logger.Info("Simulated charge approved", map[string]interface{}{
		"amount":    amount.StringFixed(2),
		"currency":  currency,
		"reference": reference,
		"psp_ref":   result.Reference,
	})

	return result, nil
}
