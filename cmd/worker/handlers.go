package main

import (
	"github.com/hibiken/asynq"

	analyticsJob "artstore-backend/internal/domains/analytics/job"
	couponJob "artstore-backend/internal/domains/coupon/job"
	orderJob "artstore-backend/internal/domains/order/job"
	"artstore-backend/internal/shared"
	"artstore-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Order notification handlers
	sendOrderConfirmation *orderJob.SendOrderConfirmationHandler
	sendShipmentNotice    *orderJob.SendShipmentNoticeHandler

	// Maintenance handlers
	deactivateExpiredCoupons *couponJob.DeactivateExpiredHandler
	purgeActivityLog         *analyticsJob.PurgeHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		sendOrderConfirmation: orderJob.NewSendOrderConfirmationHandler(c.OrderService, c.EmailService),
		sendShipmentNotice:    orderJob.NewSendShipmentNoticeHandler(c.OrderService, c.EmailService),

		deactivateExpiredCoupons: couponJob.NewDeactivateExpiredHandler(c.CouponService),
		purgeActivityLog:         analyticsJob.NewPurgeHandler(c.AnalyticsService, c.Config.Jobs.ActivityRetentionDays),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Order notifications
	mux.HandleFunc(shared.TypeSendOrderConfirmation, h.sendOrderConfirmation.ProcessTask)
	mux.HandleFunc(shared.TypeSendShipmentNotice, h.sendShipmentNotice.ProcessTask)

	// Maintenance
	mux.HandleFunc(shared.TypeDeactivateExpiredCoupons, h.deactivateExpiredCoupons.ProcessTask)
	mux.HandleFunc(shared.TypePurgeActivityLog, h.purgeActivityLog.ProcessTask)
}
