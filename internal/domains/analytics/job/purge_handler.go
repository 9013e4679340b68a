package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"artstore-backend/internal/domains/analytics/service"
	"artstore-backend/pkg/logger"
)

// PurgeHandler ages out old activity rows so the funnel tables stay small
// enough for the dashboard aggregations.
type PurgeHandler struct {
	analyticsService service.ServiceInterface
	retentionDays    int
}

func NewPurgeHandler(analyticsService service.ServiceInterface, retentionDays int) *PurgeHandler {
	return &PurgeHandler{
		analyticsService: analyticsService,
		retentionDays:    retentionDays,
	}
}

func (h *PurgeHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	count, err := h.analyticsService.Purge(ctx, h.retentionDays)
	if err != nil {
		logger.Error("Failed to purge activity log", err)
		return fmt.Errorf("purge activity log: %w", err)
	}

	logger.Info("Purged old activity events", map[string]interface{}{
		"deleted":        count,
		"retention_days": h.retentionDays,
		"duration":       time.Since(start).String(),
	})

	return nil
}
