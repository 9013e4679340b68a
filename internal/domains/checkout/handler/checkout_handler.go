package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartModel "artstore-backend/internal/domains/cart/model"
	"artstore-backend/internal/domains/checkout/model"
	"artstore-backend/internal/domains/checkout/service"
	couponModel "artstore-backend/internal/domains/coupon/model"
	orderModel "artstore-backend/internal/domains/order/model"
	productModel "artstore-backend/internal/domains/product/model"
	"artstore-backend/internal/shared"
	"artstore-backend/internal/shared/middleware"
	"artstore-backend/internal/shared/response"
	"artstore-backend/internal/shared/utils"
)

type CheckoutHandler struct {
	checkoutService service.ServiceInterface
}

func NewCheckoutHandler(checkoutService service.ServiceInterface) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextKeySessionID)

	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), sessionID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// EstimateShipping handles GET /checkout/shipping-estimate?region=TR|GLOBAL
func (h *CheckoutHandler) EstimateShipping(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextKeySessionID)

	region := c.Query("region")
	if region != shared.RegionTR && region != shared.RegionGlobal {
		region = shared.RegionTR
	}

	estimate, err := h.checkoutService.EstimateShipping(c.Request.Context(), sessionID, region)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, estimate)
}

func (h *CheckoutHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cartModel.ErrCartEmpty):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "CART_EMPTY", err.Error())
	case errors.Is(err, orderModel.ErrPriceChanged):
		response.ErrorResponse(c, http.StatusConflict, "PRICE_CHANGED", err.Error())
	case errors.Is(err, productModel.ErrInsufficientStock):
		response.ErrorResponse(c, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, productModel.ErrVariantNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, couponModel.ErrCouponNotFound):
		response.ErrorResponse(c, http.StatusNotFound, "COUPON_NOT_FOUND", err.Error())
	case errors.Is(err, couponModel.ErrCouponNotStarted):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "COUPON_NOT_STARTED", err.Error())
	case errors.Is(err, couponModel.ErrCouponExpired):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "COUPON_EXPIRED", err.Error())
	case errors.Is(err, couponModel.ErrCouponLimitReached):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "COUPON_LIMIT_REACHED", err.Error())
	case errors.Is(err, couponModel.ErrCouponNotAuthorized):
		response.ErrorResponse(c, http.StatusForbidden, "COUPON_NOT_AUTHORIZED", err.Error())
	case utils.IsValidationError(err):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
