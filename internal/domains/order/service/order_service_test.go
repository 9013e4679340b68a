package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	couponModel "artstore-backend/internal/domains/coupon/model"
	"artstore-backend/internal/domains/order/model"
	productModel "artstore-backend/internal/domains/product/model"
	"artstore-backend/internal/shared"
	"artstore-backend/pkg/database"
)

// spyTransactor runs the closure without a database and keeps score of
// outcomes so tests can assert a failed placement rolled back.
type spyTransactor struct {
	commits   int
	rollbacks int
}

func (s *spyTransactor) WithinTransaction(ctx context.Context, fn database.TxFunc) error {
	err := fn(nil)
	if err != nil {
		s.rollbacks++
		return err
	}
	s.commits++
	return nil
}

type recordingEnqueuer struct {
	taskTypes []string
}

func (r *recordingEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	r.taskTypes = append(r.taskTypes, task.Type())
	return &asynq.TaskInfo{}, nil
}

type memOrderRepo struct {
	orders  map[uuid.UUID]*model.Order
	events  []model.OrderEvent
	refunds map[uuid.UUID][]model.Refund
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{
		orders:  make(map[uuid.UUID]*model.Order),
		refunds: make(map[uuid.UUID][]model.Refund),
	}
}

func (r *memOrderRepo) CreateWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

func (r *memOrderRepo) GetByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, model.ErrOrderNotFound
}

func (r *memOrderRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *memOrderRepo) List(ctx context.Context, query *model.OrderListQuery) ([]model.Order, int, error) {
	return nil, 0, nil
}

func (r *memOrderRepo) UpdateStatusWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus, paymentStatus *model.PaymentStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return model.ErrOrderNotFound
	}
	order.Status = status
	if paymentStatus != nil {
		order.PaymentStatus = *paymentStatus
	}
	return nil
}

func (r *memOrderRepo) AddEvent(ctx context.Context, event *model.OrderEvent) error {
	r.events = append(r.events, *event)
	return nil
}

func (r *memOrderRepo) AddEventWithTx(ctx context.Context, tx pgx.Tx, event *model.OrderEvent) error {
	return r.AddEvent(ctx, event)
}

func (r *memOrderRepo) ListEvents(ctx context.Context, orderID uuid.UUID) ([]model.OrderEvent, error) {
	var events []model.OrderEvent
	for _, event := range r.events {
		if event.OrderID == orderID {
			events = append(events, event)
		}
	}
	return events, nil
}

func (r *memOrderRepo) CreateFulfillmentWithTx(ctx context.Context, tx pgx.Tx, fulfillment *model.Fulfillment) error {
	order, ok := r.orders[fulfillment.OrderID]
	if !ok {
		return model.ErrOrderNotFound
	}
	for _, fi := range fulfillment.Items {
		for i := range order.Items {
			if order.Items[i].ID != fi.OrderItemID {
				continue
			}
			if order.Items[i].FulfilledQty+fi.Quantity > order.Items[i].Quantity {
				return model.ErrExcessiveFulfillment
			}
			order.Items[i].FulfilledQty += fi.Quantity
		}
	}
	return nil
}

func (r *memOrderRepo) ListFulfillments(ctx context.Context, orderID uuid.UUID) ([]model.Fulfillment, error) {
	return nil, nil
}

func (r *memOrderRepo) CreateRefundWithTx(ctx context.Context, tx pgx.Tx, refund *model.Refund) error {
	order, ok := r.orders[refund.OrderID]
	if !ok {
		return model.ErrOrderNotFound
	}
	for _, ri := range refund.Items {
		for i := range order.Items {
			if order.Items[i].ID == ri.OrderItemID {
				order.Items[i].RefundedQty += ri.Quantity
			}
		}
	}
	r.refunds[refund.OrderID] = append(r.refunds[refund.OrderID], *refund)
	return nil
}

func (r *memOrderRepo) ListRefunds(ctx context.Context, orderID uuid.UUID) ([]model.Refund, error) {
	return r.refunds[orderID], nil
}

func (r *memOrderRepo) SumRefundsWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, refund := range r.refunds[orderID] {
		sum = sum.Add(refund.Amount)
	}
	return sum, nil
}

func (r *memOrderRepo) ListCustomers(ctx context.Context, page, limit int) ([]model.Customer, int, error) {
	return nil, 0, nil
}

type memProductRepo struct {
	variants map[uuid.UUID]*productModel.ProductVariant
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{variants: make(map[uuid.UUID]*productModel.ProductVariant)}
}

func (r *memProductRepo) Create(ctx context.Context, product *productModel.Product) error {
	return nil
}

func (r *memProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*productModel.Product, error) {
	return nil, productModel.ErrProductNotFound
}

func (r *memProductRepo) GetBySlug(ctx context.Context, slug string) (*productModel.Product, error) {
	return nil, productModel.ErrProductNotFound
}

func (r *memProductRepo) List(ctx context.Context, query *productModel.ProductListQuery, activeOnly bool) ([]productModel.Product, int, error) {
	return nil, 0, nil
}

func (r *memProductRepo) Update(ctx context.Context, product *productModel.Product) error {
	return nil
}

func (r *memProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (r *memProductRepo) CreateVariant(ctx context.Context, variant *productModel.ProductVariant) error {
	r.variants[variant.ID] = variant
	return nil
}

func (r *memProductRepo) GetVariantByID(ctx context.Context, id uuid.UUID) (*productModel.ProductVariant, error) {
	variant, ok := r.variants[id]
	if !ok {
		return nil, productModel.ErrVariantNotFound
	}
	return variant, nil
}

func (r *memProductRepo) GetVariantsByIDs(ctx context.Context, ids []uuid.UUID) ([]productModel.ProductVariant, error) {
	var out []productModel.ProductVariant
	for _, id := range ids {
		if v, ok := r.variants[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *memProductRepo) GetVariantsByIDsWithTx(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) ([]productModel.ProductVariant, error) {
	return r.GetVariantsByIDs(ctx, ids)
}

func (r *memProductRepo) AdjustStock(ctx context.Context, variantID uuid.UUID, delta int) (int, error) {
	variant, ok := r.variants[variantID]
	if !ok {
		return 0, productModel.ErrVariantNotFound
	}
	variant.Stock += delta
	return variant.Stock, nil
}

func (r *memProductRepo) DecrementStockWithTx(ctx context.Context, tx pgx.Tx, variantID uuid.UUID, qty int) error {
	variant, ok := r.variants[variantID]
	if !ok {
		return productModel.ErrInsufficientStock
	}
	if !variant.TrackQuantity {
		return nil
	}
	if variant.Stock < qty {
		return productModel.ErrInsufficientStock
	}
	variant.Stock -= qty
	return nil
}

func (r *memProductRepo) RestockWithTx(ctx context.Context, tx pgx.Tx, variantID uuid.UUID, qty int) error {
	variant, ok := r.variants[variantID]
	if !ok {
		return productModel.ErrVariantNotFound
	}
	variant.Stock += qty
	return nil
}

type memCouponRepo struct {
	coupons map[string]*couponModel.Coupon
}

func newMemCouponRepo() *memCouponRepo {
	return &memCouponRepo{coupons: make(map[string]*couponModel.Coupon)}
}

func (r *memCouponRepo) Create(ctx context.Context, coupon *couponModel.Coupon) error {
	r.coupons[coupon.Code] = coupon
	return nil
}

func (r *memCouponRepo) GetByID(ctx context.Context, id uuid.UUID) (*couponModel.Coupon, error) {
	for _, c := range r.coupons {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, couponModel.ErrCouponNotFound
}

func (r *memCouponRepo) GetByCode(ctx context.Context, code string) (*couponModel.Coupon, error) {
	coupon, ok := r.coupons[code]
	if !ok {
		return nil, couponModel.ErrCouponNotFound
	}
	return coupon, nil
}

func (r *memCouponRepo) GetByCodeWithTx(ctx context.Context, tx pgx.Tx, code string) (*couponModel.Coupon, error) {
	return r.GetByCode(ctx, code)
}

func (r *memCouponRepo) List(ctx context.Context, page, limit int) ([]couponModel.Coupon, int, error) {
	return nil, 0, nil
}

func (r *memCouponRepo) Update(ctx context.Context, coupon *couponModel.Coupon) error {
	return nil
}

func (r *memCouponRepo) RedeemWithTx(ctx context.Context, tx pgx.Tx, couponID uuid.UUID) error {
	coupon, err := r.GetByID(ctx, couponID)
	if err != nil {
		return err
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return couponModel.ErrCouponLimitReached
	}
	coupon.UsedCount++
	return nil
}

func (r *memCouponRepo) DeactivateExpired(ctx context.Context) (int, error) {
	return 0, nil
}

func (r *memCouponRepo) CreateCampaign(ctx context.Context, campaign *couponModel.Campaign) error {
	return nil
}

func (r *memCouponRepo) GetCampaignBySlug(ctx context.Context, slug string) (*couponModel.Campaign, error) {
	return nil, couponModel.ErrCampaignNotFound
}

func (r *memCouponRepo) ListCampaigns(ctx context.Context) ([]couponModel.Campaign, error) {
	return nil, nil
}

func (r *memCouponRepo) ListRunningCampaigns(ctx context.Context) ([]couponModel.Campaign, error) {
	return nil, nil
}

func (r *memCouponRepo) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	return nil
}

type fixture struct {
	tx       *spyTransactor
	orders   *memOrderRepo
	products *memProductRepo
	coupons  *memCouponRepo
	queue    *recordingEnqueuer
	svc      ServiceInterface
}

func newFixture() *fixture {
	f := &fixture{
		tx:       &spyTransactor{},
		orders:   newMemOrderRepo(),
		products: newMemProductRepo(),
		coupons:  newMemCouponRepo(),
		queue:    &recordingEnqueuer{},
	}
	f.svc = NewOrderService(f.tx, f.orders, f.products, f.coupons, f.queue)
	return f
}

func (f *fixture) addVariant(t *testing.T, stock int, priceTRY int64) uuid.UUID {
	t.Helper()
	variant := &productModel.ProductVariant{
		ID:            uuid.New(),
		ProductID:     uuid.New(),
		Size:          "50x70",
		Material:      "canvas",
		PriceTRY:      decimal.NewFromInt(priceTRY),
		PriceUSD:      decimal.NewFromInt(priceTRY / 40),
		Stock:         stock,
		TrackQuantity: true,
	}
	f.products.variants[variant.ID] = variant
	return variant.ID
}

func (f *fixture) seedOrder(t *testing.T, status model.OrderStatus, paymentStatus model.PaymentStatus, total int64, items ...model.OrderItem) *model.Order {
	t.Helper()
	order := &model.Order{
		ID:            uuid.New(),
		OrderNumber:   "AS-20260829-0001",
		Region:        shared.RegionTR,
		Currency:      "TRY",
		CustomerName:  "Ayşe Demir",
		CustomerEmail: "ayse@example.com",
		Total:         decimal.NewFromInt(total),
		Status:        status,
		PaymentStatus: paymentStatus,
		Items:         items,
	}
	f.orders.orders[order.ID] = order
	return order
}

func timePast() time.Time   { return time.Now().Add(-24 * time.Hour) }
func timeFuture() time.Time { return time.Now().Add(24 * time.Hour) }

func placementInput(items ...model.CreateOrderItemInput) *model.CreateOrderInput {
	return &model.CreateOrderInput{
		Region:          shared.RegionTR,
		CustomerName:    "Ayşe Demir",
		CustomerEmail:   "ayse@example.com",
		ShippingAddress: "Moda Cad. 12",
		ShippingCity:    "Istanbul",
		ShippingCountry: "TR",
		ShippingCost:    decimal.NewFromInt(50),
		Items:           items,
	}
}

func TestCreateOrder(t *testing.T) {
	t.Parallel()

	t.Run("places the order and decrements stock in one commit", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		variantID := f.addVariant(t, 5, 400)

		order, err := f.svc.CreateOrder(context.Background(), placementInput(model.CreateOrderItemInput{
			ProductID: uuid.New(),
			VariantID: variantID,
			Title:     "Bosphorus at Dusk",
			Quantity:  2,
		}))
		require.NoError(t, err)

		require.True(t, order.Subtotal.Equal(decimal.NewFromInt(800)), "subtotal %s", order.Subtotal)
		require.True(t, order.Total.Equal(decimal.NewFromInt(850)), "total %s", order.Total)
		require.Equal(t, "TRY", order.Currency)
		require.Equal(t, model.StatusPending, order.Status)

		require.Equal(t, 3, f.products.variants[variantID].Stock)
		require.Equal(t, 1, f.tx.commits)
		require.Len(t, f.orders.orders, 1)

		events, err := f.orders.ListEvents(context.Background(), order.ID)
		require.NoError(t, err)
		require.Len(t, events, 1)
		require.Equal(t, model.EventOrderCreated, events[0].Type)

		require.Equal(t, []string{shared.TypeSendOrderConfirmation}, f.queue.taskTypes)
	})

	t.Run("applies a percentage coupon and advances its use count", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		variantID := f.addVariant(t, 5, 400)
		code := "ART10"
		require.NoError(t, f.coupons.Create(context.Background(), &couponModel.Coupon{
			ID:        uuid.New(),
			Code:      code,
			Type:      couponModel.DiscountTypePercentage,
			Value:     decimal.NewFromInt(10),
			IsActive:  true,
			StartsAt:  timePast(),
			ExpiresAt: timeFuture(),
		}))

		input := placementInput(model.CreateOrderItemInput{
			ProductID: uuid.New(),
			VariantID: variantID,
			Title:     "Bosphorus at Dusk",
			Quantity:  2,
		})
		input.CouponCode = &code

		order, err := f.svc.CreateOrder(context.Background(), input)
		require.NoError(t, err)
		require.True(t, order.Discount.Equal(decimal.NewFromInt(80)), "discount %s", order.Discount)
		require.True(t, order.Total.Equal(decimal.NewFromInt(770)), "total %s", order.Total)
		require.Equal(t, 1, f.coupons.coupons[code].UsedCount)
	})
}

func TestCreateOrderAllOrNothing(t *testing.T) {
	t.Parallel()

	t.Run("insufficient stock on one line fails the whole placement", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		plenty := f.addVariant(t, 10, 400)
		scarce := f.addVariant(t, 1, 600)

		_, err := f.svc.CreateOrder(context.Background(), placementInput(
			model.CreateOrderItemInput{ProductID: uuid.New(), VariantID: plenty, Title: "Print A", Quantity: 2},
			model.CreateOrderItemInput{ProductID: uuid.New(), VariantID: scarce, Title: "Print B", Quantity: 3},
		))
		require.ErrorIs(t, err, productModel.ErrInsufficientStock)

		require.Equal(t, 1, f.tx.rollbacks)
		require.Equal(t, 0, f.tx.commits)
		require.Empty(t, f.orders.orders)
		require.Empty(t, f.queue.taskTypes)
	})

	t.Run("a spent coupon fails the whole placement", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		variantID := f.addVariant(t, 5, 400)
		limit := 1
		code := "ONEUSE"
		require.NoError(t, f.coupons.Create(context.Background(), &couponModel.Coupon{
			ID:         uuid.New(),
			Code:       code,
			Type:       couponModel.DiscountTypeFixedAmount,
			Value:      decimal.NewFromInt(100),
			IsActive:   true,
			StartsAt:   timePast(),
			ExpiresAt:  timeFuture(),
			UsageLimit: &limit,
			UsedCount:  1,
		}))

		input := placementInput(model.CreateOrderItemInput{
			ProductID: uuid.New(),
			VariantID: variantID,
			Title:     "Print A",
			Quantity:  1,
		})
		input.CouponCode = &code

		_, err := f.svc.CreateOrder(context.Background(), input)
		require.ErrorIs(t, err, couponModel.ErrCouponLimitReached)
		require.Equal(t, 1, f.tx.rollbacks)
		require.Empty(t, f.orders.orders)
		require.Empty(t, f.queue.taskTypes)
	})

	t.Run("a price moved since checkout fails the placement", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		variantID := f.addVariant(t, 5, 450)
		snapshot := decimal.NewFromInt(400)

		_, err := f.svc.CreateOrder(context.Background(), placementInput(model.CreateOrderItemInput{
			ProductID:         uuid.New(),
			VariantID:         variantID,
			Title:             "Print A",
			Quantity:          1,
			ExpectedUnitPrice: &snapshot,
		}))
		require.ErrorIs(t, err, model.ErrPriceChanged)
		require.Equal(t, 1, f.tx.rollbacks)
		require.Empty(t, f.orders.orders)
	})
}

func TestRefundAccumulation(t *testing.T) {
	t.Parallel()

	t.Run("partial refunds accumulate until the order is fully refunded", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		variantID := f.addVariant(t, 0, 500)
		order := f.seedOrder(t, model.StatusPaid, model.PaymentPaid, 1000, model.OrderItem{
			ID:        uuid.New(),
			VariantID: variantID,
			UnitPrice: decimal.NewFromInt(500),
			Quantity:  2,
		})

		_, err := f.svc.Refund(context.Background(), order.ID, &model.RefundRequest{
			Amount: decimal.NewFromInt(400),
		})
		require.NoError(t, err)
		require.Equal(t, model.PaymentPartiallyRefunded, order.PaymentStatus)
		require.Equal(t, model.StatusPaid, order.Status)

		_, err = f.svc.Refund(context.Background(), order.ID, &model.RefundRequest{
			Amount: decimal.NewFromInt(600),
		})
		require.NoError(t, err)
		require.Equal(t, model.PaymentRefunded, order.PaymentStatus)
		require.Equal(t, model.StatusRefunded, order.Status)

		_, err = f.svc.Refund(context.Background(), order.ID, &model.RefundRequest{
			Amount: decimal.NewFromInt(1),
		})
		require.ErrorIs(t, err, model.ErrNothingToRefund)
	})

	t.Run("a refund past the remainder is rejected", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		variantID := f.addVariant(t, 0, 500)
		order := f.seedOrder(t, model.StatusPaid, model.PaymentPaid, 1000, model.OrderItem{
			ID:        uuid.New(),
			VariantID: variantID,
			UnitPrice: decimal.NewFromInt(500),
			Quantity:  2,
		})

		_, err := f.svc.Refund(context.Background(), order.ID, &model.RefundRequest{
			Amount: decimal.NewFromInt(400),
		})
		require.NoError(t, err)

		_, err = f.svc.Refund(context.Background(), order.ID, &model.RefundRequest{
			Amount: decimal.NewFromInt(700),
		})
		require.ErrorIs(t, err, model.ErrRefundExceedsRemainder)
		require.Equal(t, model.PaymentPartiallyRefunded, order.PaymentStatus)
	})

	t.Run("restock returns the refunded units to the variant", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		variantID := f.addVariant(t, 0, 500)
		itemID := uuid.New()
		order := f.seedOrder(t, model.StatusPaid, model.PaymentPaid, 1000, model.OrderItem{
			ID:        itemID,
			VariantID: variantID,
			UnitPrice: decimal.NewFromInt(500),
			Quantity:  2,
		})

		_, err := f.svc.Refund(context.Background(), order.ID, &model.RefundRequest{
			Amount:       decimal.NewFromInt(500),
			RestockItems: true,
			Items:        []model.RefundItemSpec{{OrderItemID: itemID, Quantity: 1}},
		})
		require.NoError(t, err)
		require.Equal(t, 1, f.products.variants[variantID].Stock)
	})
}

func TestCancelRestocksItems(t *testing.T) {
	t.Parallel()

	t.Run("cancelling a paid order returns unrefunded units to stock", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		variantID := f.addVariant(t, 0, 400)
		order := f.seedOrder(t, model.StatusPaid, model.PaymentPaid, 1200, model.OrderItem{
			ID:          uuid.New(),
			VariantID:   variantID,
			UnitPrice:   decimal.NewFromInt(400),
			Quantity:    3,
			RefundedQty: 1,
		})

		updated, err := f.svc.UpdateStatus(context.Background(), order.ID, &model.UpdateStatusRequest{
			Status: string(model.StatusCancelled),
		})
		require.NoError(t, err)
		require.Equal(t, model.StatusCancelled, updated.Status)
		require.Equal(t, 2, f.products.variants[variantID].Stock)
	})

	t.Run("shipped orders cannot be cancelled", func(t *testing.T) {
		t.Parallel()
		f := newFixture()
		variantID := f.addVariant(t, 0, 400)
		order := f.seedOrder(t, model.StatusShipped, model.PaymentPaid, 400, model.OrderItem{
			ID:        uuid.New(),
			VariantID: variantID,
			UnitPrice: decimal.NewFromInt(400),
			Quantity:  1,
		})

		_, err := f.svc.UpdateStatus(context.Background(), order.ID, &model.UpdateStatusRequest{
			Status: string(model.StatusCancelled),
		})
		require.ErrorIs(t, err, model.ErrInvalidStatusTransition)
		require.Equal(t, 0, f.products.variants[variantID].Stock)
	})
}
