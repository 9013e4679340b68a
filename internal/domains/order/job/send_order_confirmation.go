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

type SendOrderConfirmationHandler struct {
	orderService service.ServiceInterface
	emailService email.EmailService
}

func NewSendOrderConfirmationHandler(orderService service.ServiceInterface, emailService email.EmailService) *SendOrderConfirmationHandler {
	return &SendOrderConfirmationHandler{
		orderService: orderService,
		emailService: emailService,
	}
}

func (h *SendOrderConfirmationHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.OrderTaskPayload
	if err := utils.UnmarshalTask(t, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	order, err := h.orderService.GetByID(ctx, payload.OrderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", payload.OrderID, err)
	}

	data := email.OrderConfirmationData{
		Email:       order.CustomerEmail,
		Name:        order.CustomerName,
		OrderNumber: order.OrderNumber,
		Currency:    order.Currency,
		Total:       order.Total,
	}
	for _, item := range order.Items {
		data.Lines = append(data.Lines, email.OrderLine{
			Title:    item.Title,
			Size:     item.Size,
			Quantity: item.Quantity,
		})
	}

	if err := h.emailService.SendOrderConfirmation(ctx, data); err != nil {
		return fmt.Errorf("send confirmation for %s: %w", order.OrderNumber, err)
	}

	// Best effort; the email already went out.
	if err := h.orderService.RecordEvent(ctx, order.ID, model.EventConfirmationSent); err != nil {
		logger.Error("Failed to record confirmation event", err)
	}

	logger.Info("Sent order confirmation", map[string]interface{}{
		"order_number": order.OrderNumber,
		"email":        order.CustomerEmail,
	})

	return nil
}
