package service

import (
	"context"

	cartModel "artstore-backend/internal/domains/cart/model"
	cartService "artstore-backend/internal/domains/cart/service"
	"artstore-backend/internal/domains/checkout/model"
	"artstore-backend/internal/domains/checkout/payment"
	orderModel "artstore-backend/internal/domains/order/model"
	orderService "artstore-backend/internal/domains/order/service"
	"artstore-backend/pkg/logger"
)

type checkoutService struct {
	carts     cartService.ServiceInterface
	orders    orderService.ServiceInterface
	estimator *ShippingEstimator
	gateway   payment.Gateway
	events    EventRecorder
}

func NewCheckoutService(
	carts cartService.ServiceInterface,
	orders orderService.ServiceInterface,
	estimator *ShippingEstimator,
	gateway payment.Gateway,
	events EventRecorder,
) ServiceInterface {
	return &checkoutService{
		carts:     carts,
		orders:    orders,
		estimator: estimator,
		gateway:   gateway,
		events:    events,
	}
}

func (s *checkoutService) Checkout(ctx context.Context, sessionID string, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetRaw(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, cartModel.ErrCartEmpty
	}

	if s.events != nil {
		s.events.RecordCheckoutStart(ctx, sessionID)
	}

	totals := cart.Totals(req.Region)
	estimate := s.estimator.Estimate(req.Region, totals.Subtotal, totals.TotalDesi)

	input := &orderModel.CreateOrderInput{
		Region:          req.Region,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingCountry: req.ShippingCountry,
		CouponCode:      req.CouponCode,
		ShippingCost:    estimate.Cost,
	}
	for _, item := range cart.Items {
		snapshotPrice := item.PriceFor(req.Region)
		input.Items = append(input.Items, orderModel.CreateOrderItemInput{
			ProductID:         item.ProductID,
			VariantID:         item.VariantID,
			Title:             item.Name,
			Quantity:          item.Quantity,
			ExpectedUnitPrice: &snapshotPrice,
		})
	}

	order, err := s.orders.CreateOrder(ctx, input)
	if err != nil {
		return nil, err
	}

	charge, err := s.gateway.Charge(ctx, order.Total, order.Currency, order.OrderNumber)
	if err != nil {
		// The order stays pending; an operator can retry payment or
		// cancel it from the back office.
		logger.Error("Charge failed, order left pending", err)
		return nil, err
	}

	paid, err := s.orders.UpdateStatus(ctx, order.ID, &orderModel.UpdateStatusRequest{
		Status: string(orderModel.StatusPaid),
		Note:   &charge.Reference,
	})
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		logger.Error("Failed to clear cart after checkout", err)
	}

	if s.events != nil {
		s.events.RecordPurchase(ctx, sessionID, paid.ID)
	}

	return &model.CheckoutResponse{
		Order:      paid,
		PaymentRef: charge.Reference,
	}, nil
}

func (s *checkoutService) EstimateShipping(ctx context.Context, sessionID, region string) (*model.ShippingEstimate, error) {
	cart, err := s.carts.GetRaw(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, cartModel.ErrCartEmpty
	}

	totals := cart.Totals(region)
	estimate := s.estimator.Estimate(region, totals.Subtotal, totals.TotalDesi)
	return &estimate, nil
}
