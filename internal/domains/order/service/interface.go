package service

import (
	"context"

	"github.com/google/uuid"

	"artstore-backend/internal/domains/order/model"
)

type ServiceInterface interface {
	// CreateOrder runs the whole placement inside one transaction: price
	// revalidation, stock decrement, coupon redemption and the insert
	// succeed or fail together.
	CreateOrder(ctx context.Context, input *model.CreateOrderInput) (*model.Order, error)

	// AdminCreate places an order from the back office at live catalog
	// prices, optionally marking it paid immediately.
	AdminCreate(ctx context.Context, req *model.AdminCreateOrderRequest) (*model.Order, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error)
	List(ctx context.Context, query *model.OrderListQuery) ([]model.Order, int, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateStatusRequest) (*model.Order, error)
	Fulfill(ctx context.Context, id uuid.UUID, req *model.FulfillRequest) (*model.Fulfillment, error)
	Refund(ctx context.Context, id uuid.UUID, req *model.RefundRequest) (*model.Refund, error)

	ListCustomers(ctx context.Context, page, limit int) ([]model.Customer, int, error)

	// RecordEvent appends an audit entry outside any transaction. Used by
	// the email jobs to note delivery.
	RecordEvent(ctx context.Context, orderID uuid.UUID, eventType string) error
}
