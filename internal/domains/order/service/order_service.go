package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	couponRepo "artstore-backend/internal/domains/coupon/repository"
	"artstore-backend/internal/domains/order/model"
	repo "artstore-backend/internal/domains/order/repository"
	productModel "artstore-backend/internal/domains/product/model"
	productRepo "artstore-backend/internal/domains/product/repository"
	"artstore-backend/internal/shared"
	"artstore-backend/internal/shared/utils"
	"artstore-backend/pkg/database"
	"artstore-backend/pkg/logger"
)

// TaskEnqueuer is the slice of the asynq client the service needs.
// *asynq.Client satisfies it.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type orderService struct {
	tx          database.Transactor
	repository  repo.RepositoryInterface
	productRepo productRepo.RepositoryInterface
	couponRepo  couponRepo.RepositoryInterface
	queueClient TaskEnqueuer
}

func NewOrderService(
	tx database.Transactor,
	repository repo.RepositoryInterface,
	productRepository productRepo.RepositoryInterface,
	couponRepository couponRepo.RepositoryInterface,
	queueClient TaskEnqueuer,
) ServiceInterface {
	return &orderService{
		tx:          tx,
		repository:  repository,
		productRepo: productRepository,
		couponRepo:  couponRepository,
		queueClient: queueClient,
	}
}

// =====================================================
// PLACEMENT
// =====================================================

func (s *orderService) CreateOrder(ctx context.Context, input *model.CreateOrderInput) (*model.Order, error) {
	var order *model.Order
	err := s.tx.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		order, err = s.placeOrder(ctx, tx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.enqueueOrderTask(ctx, shared.TypeSendOrderConfirmation, order.ID, shared.QueueHigh)

	return order, nil
}

func (s *orderService) placeOrder(ctx context.Context, tx pgx.Tx, input *model.CreateOrderInput) (*model.Order, error) {
	variantIDs := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		variantIDs = append(variantIDs, item.VariantID)
	}

	variants, err := s.productRepo.GetVariantsByIDsWithTx(ctx, tx, variantIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*productModel.ProductVariant, len(variants))
	for i := range variants {
		byID[variants[i].ID] = &variants[i]
	}

	order := &model.Order{
		ID:              uuid.New(),
		OrderNumber:     utils.GenerateOrderNumber(time.Now()),
		Region:          input.Region,
		Currency:        shared.CurrencyForRegion(input.Region),
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		ShippingAddress: input.ShippingAddress,
		ShippingCity:    input.ShippingCity,
		ShippingCountry: input.ShippingCountry,
		ShippingCost:    input.ShippingCost,
		Status:          model.StatusPending,
		PaymentStatus:   model.PaymentPending,
	}

	subtotal := decimal.Zero
	for _, item := range input.Items {
		variant, ok := byID[item.VariantID]
		if !ok {
			return nil, productModel.ErrVariantNotFound
		}

		// The customer checked out against a snapshot. If the price moved
		// since, fail the whole placement rather than charging a surprise.
		unitPrice := variant.PriceFor(input.Region)
		if item.ExpectedUnitPrice != nil && !unitPrice.Equal(*item.ExpectedUnitPrice) {
			return nil, model.ErrPriceChanged
		}

		if err := s.productRepo.DecrementStockWithTx(ctx, tx, variant.ID, item.Quantity); err != nil {
			return nil, err
		}

		sku := ""
		if variant.SKU != nil {
			sku = *variant.SKU
		}

		order.Items = append(order.Items, model.OrderItem{
			ID:        uuid.New(),
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Title:     item.Title,
			Size:      variant.Size,
			Material:  variant.Material,
			SKU:       sku,
			UnitPrice: unitPrice,
			Quantity:  item.Quantity,
			Desi:      variant.Desi,
		})
		subtotal = subtotal.Add(unitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order.Subtotal = subtotal
	order.Discount = decimal.Zero

	if input.CouponCode != nil && *input.CouponCode != "" {
		coupon, err := s.couponRepo.GetByCodeWithTx(ctx, tx, *input.CouponCode)
		if err != nil {
			return nil, err
		}
		if err := coupon.CheckRedeemable(time.Now(), input.CustomerEmail); err != nil {
			return nil, err
		}
		if err := s.couponRepo.RedeemWithTx(ctx, tx, coupon.ID); err != nil {
			return nil, err
		}

		order.Discount = coupon.CalculateDiscount(subtotal)
		order.CouponCode = &coupon.Code
	}

	order.Total = subtotal.Sub(order.Discount).Add(order.ShippingCost)

	if err := s.repository.CreateWithTx(ctx, tx, order); err != nil {
		return nil, err
	}

	if err := s.repository.AddEventWithTx(ctx, tx, &model.OrderEvent{
		ID:      uuid.New(),
		OrderID: order.ID,
		Type:    model.EventOrderCreated,
	}); err != nil {
		return nil, err
	}

	order.FulfillmentStatus = model.FulfillmentUnfulfilled

	return order, nil
}

func (s *orderService) AdminCreate(ctx context.Context, req *model.AdminCreateOrderRequest) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	input := &model.CreateOrderInput{
		Region:          req.Region,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingCountry: req.ShippingCountry,
		CouponCode:      req.CouponCode,
		ShippingCost:    req.ShippingCost,
	}
	for _, item := range req.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		input.Items = append(input.Items, model.CreateOrderItemInput{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Title:     product.Title,
			Quantity:  item.Quantity,
		})
	}

	order, err := s.CreateOrder(ctx, input)
	if err != nil {
		return nil, err
	}

	if model.OrderStatus(req.Status) == model.StatusPaid {
		return s.UpdateStatus(ctx, order.ID, &model.UpdateStatusRequest{Status: string(model.StatusPaid)})
	}

	return order, nil
}

// =====================================================
// READS
// =====================================================

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *orderService) GetDetail(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error) {
	order, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	events, err := s.repository.ListEvents(ctx, id)
	if err != nil {
		return nil, err
	}
	fulfillments, err := s.repository.ListFulfillments(ctx, id)
	if err != nil {
		return nil, err
	}
	refunds, err := s.repository.ListRefunds(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.OrderDetail{
		Order:        order,
		Events:       events,
		Fulfillments: fulfillments,
		Refunds:      refunds,
	}, nil
}

func (s *orderService) List(ctx context.Context, query *model.OrderListQuery) ([]model.Order, int, error) {
	query.Normalize()
	return s.repository.List(ctx, query)
}

// =====================================================
// LIFECYCLE
// =====================================================

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateStatusRequest) (*model.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	next := model.OrderStatus(req.Status)

	err := s.tx.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.repository.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(next) {
			if order.Status.IsTerminal() {
				return model.ErrOrderTerminal
			}
			return model.ErrInvalidStatusTransition
		}

		var paymentStatus *model.PaymentStatus
		if next == model.StatusPaid {
			paid := model.PaymentPaid
			paymentStatus = &paid
		}

		// Cancellation undoes the placement decrement. Cancel is only
		// reachable before shipment, so nothing fulfilled is returned;
		// quantities already refunded with restock stay out.
		if next == model.StatusCancelled {
			for _, item := range order.Items {
				qty := item.Quantity - item.RefundedQty
				if qty <= 0 {
					continue
				}
				if err := s.productRepo.RestockWithTx(ctx, tx, item.VariantID, qty); err != nil {
					return err
				}
			}
		}

		if err := s.repository.UpdateStatusWithTx(ctx, tx, id, next, paymentStatus); err != nil {
			return err
		}

		return s.repository.AddEventWithTx(ctx, tx, &model.OrderEvent{
			ID:      uuid.New(),
			OrderID: id,
			Type:    model.EventStatusChanged,
			Note:    statusNote(order.Status, next, req.Note),
		})
	})
	if err != nil {
		return nil, err
	}

	return s.repository.GetByID(ctx, id)
}

func statusNote(from, to model.OrderStatus, note *string) *string {
	text := fmt.Sprintf("%s -> %s", from, to)
	if note != nil && *note != "" {
		text = fmt.Sprintf("%s: %s", text, *note)
	}
	return &text
}

// =====================================================
// FULFILLMENT
// =====================================================

func (s *orderService) Fulfill(ctx context.Context, id uuid.UUID, req *model.FulfillRequest) (*model.Fulfillment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var fulfillment *model.Fulfillment
	err := s.tx.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.repository.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() {
			return model.ErrOrderTerminal
		}

		known := make(map[uuid.UUID]bool, len(order.Items))
		for _, item := range order.Items {
			known[item.ID] = true
		}

		fulfillment = &model.Fulfillment{
			ID:              uuid.New(),
			OrderID:         order.ID,
			TrackingCompany: req.TrackingCompany,
			TrackingNumber:  req.TrackingNumber,
			TrackingURL:     req.TrackingURL,
		}
		for _, spec := range req.Items {
			if !known[spec.OrderItemID] {
				return model.ErrOrderItemNotFound
			}
			fulfillment.Items = append(fulfillment.Items, model.FulfillmentItem{
				ID:          uuid.New(),
				OrderItemID: spec.OrderItemID,
				Quantity:    spec.Quantity,
			})
		}

		if err := s.repository.CreateFulfillmentWithTx(ctx, tx, fulfillment); err != nil {
			return err
		}

		if err := s.repository.AddEventWithTx(ctx, tx, &model.OrderEvent{
			ID:      uuid.New(),
			OrderID: order.ID,
			Type:    model.EventFulfillmentAdded,
			Note:    &req.TrackingNumber,
		}); err != nil {
			return err
		}

		// The first shipment moves the order to shipped; the per-line
		// fulfillment status stays derived from the item aggregates, so a
		// partial first shipment still reads as partial.
		if order.Status.CanTransitionTo(model.StatusShipped) {
			if err := s.repository.UpdateStatusWithTx(ctx, tx, id, model.StatusShipped, nil); err != nil {
				return err
			}
			if err := s.repository.AddEventWithTx(ctx, tx, &model.OrderEvent{
				ID:      uuid.New(),
				OrderID: order.ID,
				Type:    model.EventStatusChanged,
				Note:    statusNote(order.Status, model.StatusShipped, nil),
			}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.NotifyCustomer {
		s.enqueueOrderTask(ctx, shared.TypeSendShipmentNotice, id, shared.QueueDefault)
	}

	return fulfillment, nil
}

// =====================================================
// REFUNDS
// =====================================================

func (s *orderService) Refund(ctx context.Context, id uuid.UUID, req *model.RefundRequest) (*model.Refund, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var refund *model.Refund
	err := s.tx.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := s.repository.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if order.Status == model.StatusPending || order.Status == model.StatusCancelled {
			return model.ErrInvalidStatusTransition
		}

		// The remainder is recomputed under the row lock every time; the
		// client never supplies it.
		refundedSoFar, err := s.repository.SumRefundsWithTx(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		remainder := order.Total.Sub(refundedSoFar)
		if remainder.LessThanOrEqual(decimal.Zero) {
			return model.ErrNothingToRefund
		}
		if req.Amount.GreaterThan(remainder) {
			return model.ErrRefundExceedsRemainder
		}

		known := make(map[uuid.UUID]bool, len(order.Items))
		for _, item := range order.Items {
			known[item.ID] = true
		}

		refund = &model.Refund{
			ID:           uuid.New(),
			OrderID:      order.ID,
			Amount:       req.Amount,
			Reason:       req.Reason,
			RestockItems: req.RestockItems,
		}
		for _, spec := range req.Items {
			if !known[spec.OrderItemID] {
				return model.ErrOrderItemNotFound
			}
			refund.Items = append(refund.Items, model.RefundItem{
				ID:          uuid.New(),
				OrderItemID: spec.OrderItemID,
				Quantity:    spec.Quantity,
			})
		}

		if err := s.repository.CreateRefundWithTx(ctx, tx, refund); err != nil {
			return err
		}

		if req.RestockItems {
			for _, item := range refund.Items {
				variantID, err := variantForOrderItem(order.Items, item.OrderItemID)
				if err != nil {
					return err
				}
				if err := s.productRepo.RestockWithTx(ctx, tx, variantID, item.Quantity); err != nil {
					return err
				}
			}
		}

		newStatus := order.Status
		paymentStatus := model.PaymentPartiallyRefunded
		if req.Amount.Equal(remainder) {
			paymentStatus = model.PaymentRefunded
			if order.Status.CanTransitionTo(model.StatusRefunded) {
				newStatus = model.StatusRefunded
			}
		}
		if err := s.repository.UpdateStatusWithTx(ctx, tx, order.ID, newStatus, &paymentStatus); err != nil {
			return err
		}

		note := fmt.Sprintf("%s %s refunded", req.Amount, order.Currency)
		if err := s.repository.AddEventWithTx(ctx, tx, &model.OrderEvent{
			ID:      uuid.New(),
			OrderID: order.ID,
			Type:    model.EventRefundIssued,
			Note:    &note,
		}); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return refund, nil
}

func variantForOrderItem(items []model.OrderItem, orderItemID uuid.UUID) (uuid.UUID, error) {
	for _, item := range items {
		if item.ID == orderItemID {
			return item.VariantID, nil
		}
	}
	return uuid.Nil, model.ErrOrderItemNotFound
}

// =====================================================
// CUSTOMERS
// =====================================================

func (s *orderService) ListCustomers(ctx context.Context, page, limit int) ([]model.Customer, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repository.ListCustomers(ctx, page, limit)
}

func (s *orderService) RecordEvent(ctx context.Context, orderID uuid.UUID, eventType string) error {
	return s.repository.AddEvent(ctx, &model.OrderEvent{
		ID:      uuid.New(),
		OrderID: orderID,
		Type:    eventType,
	})
}

// =====================================================
// EMAIL JOBS
// =====================================================

// enqueueOrderTask queues an email job after commit. A queue hiccup should
// never undo a placed order, so failures are logged and swallowed.
func (s *orderService) enqueueOrderTask(ctx context.Context, taskType string, orderID uuid.UUID, queue string) {
	if s.queueClient == nil {
		return
	}

	payload, err := json.Marshal(model.OrderTaskPayload{OrderID: orderID})
	if err != nil {
		logger.Error("Failed to marshal order task payload", err)
		return
	}

	task := asynq.NewTask(taskType, payload, asynq.Queue(queue), asynq.MaxRetry(5))
	if _, err := s.queueClient.EnqueueContext(ctx, task); err != nil {
		logger.Error("Failed to enqueue order task", err)
	}
}
