package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"artstore-backend/internal/domains/order/model"
)

type RepositoryInterface interface {
	// Creation happens inside the checkout transaction so stock decrement,
	// coupon redemption and the insert commit or roll back together.
	CreateWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error)

	// GetByIDForUpdate locks the order row for the duration of the
	// transaction. Fulfillment and refund flows take this lock first.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error)

	List(ctx context.Context, query *model.OrderListQuery) ([]model.Order, int, error)

	UpdateStatusWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus, paymentStatus *model.PaymentStatus) error

	AddEvent(ctx context.Context, event *model.OrderEvent) error
	AddEventWithTx(ctx context.Context, tx pgx.Tx, event *model.OrderEvent) error
	ListEvents(ctx context.Context, orderID uuid.UUID) ([]model.OrderEvent, error)

	// CreateFulfillmentWithTx inserts the shipment and advances each order
	// item's fulfilled_qty with the bound check folded into the update.
	// Returns model.ErrExcessiveFulfillment when a line would overshoot.
	CreateFulfillmentWithTx(ctx context.Context, tx pgx.Tx, fulfillment *model.Fulfillment) error
	ListFulfillments(ctx context.Context, orderID uuid.UUID) ([]model.Fulfillment, error)

	CreateRefundWithTx(ctx context.Context, tx pgx.Tx, refund *model.Refund) error
	ListRefunds(ctx context.Context, orderID uuid.UUID) ([]model.Refund, error)

	// SumRefundsWithTx totals prior refunds inside the same transaction
	// that holds the order row lock, so the remainder check cannot race.
	SumRefundsWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (decimal.Decimal, error)

	ListCustomers(ctx context.Context, page, limit int) ([]model.Customer, int, error)
}
