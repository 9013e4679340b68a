package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"artstore-backend/internal/domains/order/model"
	"artstore-backend/internal/domains/order/service"
	"artstore-backend/internal/infrastructure/email"
	"artstore-backend/internal/shared/utils"
	"artstore-backend/pkg/logger"
)

type SendShipmentNoticeHandler struct {
	orderService service.ServiceInterface
	emailService email.EmailService
}

func NewSendShipmentNoticeHandler(orderService service.ServiceInterface, emailService email.EmailService) *SendShipmentNoticeHandler {
	return &SendShipmentNoticeHandler{
		orderService: orderService,
		emailService: emailService,
	}
}

func (h *SendShipmentNoticeHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.OrderTaskPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	detail, err := h.orderService.GetDetail(ctx, payload.OrderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", payload.OrderID, err)
	}
	if len(detail.Fulfillments) == 0 {
		logger.Info("No fulfillment on order yet, skipping notice", map[string]interface{}{
			"order_id": payload.OrderID,
		})
		return nil
	}

	order := detail.Order
	latest := detail.Fulfillments[len(detail.Fulfillments)-1]

	data := email.ShipmentNoticeData{
		Email:           order.CustomerEmail,
		Name:            order.CustomerName,
		OrderNumber:     order.OrderNumber,
		TrackingCompany: latest.TrackingCompany,
		TrackingNumber:  latest.TrackingNumber,
		TrackingURL:     latest.TrackingURL,
	}

	if err := h.emailService.SendShipmentNotice(ctx, data); err != nil {
		return fmt.Errorf("send shipment notice for %s: %w", order.OrderNumber, err)
	}

	if err := h.orderService.RecordEvent(ctx, order.ID, model.EventShipmentNoticeSent); err != nil {
		logger.Error("Failed to record shipment notice event", err)
	}

	logger.Info("Sent shipment notice", map[string]interface{}{
		"order_number": order.OrderNumber,
		"tracking":     latest.TrackingNumber,
	})

	return nil
}
