package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"artstore-backend/internal/domains/coupon/service"
	"artstore-backend/pkg/logger"
)

// DeactivateExpiredHandler runs nightly and flips off coupons whose window
// has closed, so storefront validation stays cheap.
type DeactivateExpiredHandler struct {
	couponService service.ServiceInterface
}

func NewDeactivateExpiredHandler(couponService service.ServiceInterface) *DeactivateExpiredHandler {
	return &DeactivateExpiredHandler{couponService: couponService}
}

func (h *DeactivateExpiredHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	count, err := h.couponService.DeactivateExpired(ctx)
	if err != nil {
		logger.Error("Failed to deactivate expired coupons", err)
		return fmt.Errorf("deactivate expired coupons: %w", err)
	}

	logger.Info("Completed expired coupon sweep", map[string]interface{}{
		"deactivated": count,
		"duration":    time.Since(start).String(),
	})

	return nil
}
