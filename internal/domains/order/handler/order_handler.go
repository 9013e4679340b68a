package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	couponModel "artstore-backend/internal/domains/coupon/model"
	"artstore-backend/internal/domains/order/model"
	"artstore-backend/internal/domains/order/service"
	productModel "artstore-backend/internal/domains/product/model"
	"artstore-backend/internal/shared/response"
	"artstore-backend/internal/shared/utils"
)

type OrderHandler struct {
	orderService service.ServiceInterface
}

func NewOrderHandler(orderService service.ServiceInterface) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create handles POST /admin/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req model.AdminCreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	order, err := h.orderService.AdminCreate(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, order)
}

// List handles GET /admin/orders
func (h *OrderHandler) List(c *gin.Context) {
	var query model.OrderListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), &query)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, orders, &response.Meta{
		Page:  query.Page,
		Limit: query.Limit,
		Total: total,
	})
}

// Get handles GET /admin/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	detail, err := h.orderService.GetDetail(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// UpdateStatus handles PATCH /admin/orders/:id
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, order)
}

// Fulfill handles POST /admin/orders/:id/fulfill
func (h *OrderHandler) Fulfill(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	var req model.FulfillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	fulfillment, err := h.orderService.Fulfill(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, fulfillment)
}

// Refund handles POST /admin/orders/:id/refund
func (h *OrderHandler) Refund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}

	var req model.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	refund, err := h.orderService.Refund(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, refund)
}

// ListCustomers handles GET /admin/customers
func (h *OrderHandler) ListCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	customers, total, err := h.orderService.ListCustomers(c.Request.Context(), page, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, customers, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

func (h *OrderHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrOrderNotFound), errors.Is(err, model.ErrOrderItemNotFound),
		errors.Is(err, productModel.ErrProductNotFound), errors.Is(err, productModel.ErrVariantNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrInvalidStatusTransition), errors.Is(err, model.ErrOrderTerminal):
		response.ErrorResponse(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", err.Error())
	case errors.Is(err, model.ErrExcessiveFulfillment):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "EXCESSIVE_FULFILLMENT", err.Error())
	case errors.Is(err, model.ErrRefundExceedsRemainder), errors.Is(err, model.ErrNothingToRefund):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "REFUND_EXCEEDS_REMAINDER", err.Error())
	case errors.Is(err, model.ErrPriceChanged):
		response.ErrorResponse(c, http.StatusConflict, "PRICE_CHANGED", err.Error())
	case errors.Is(err, productModel.ErrInsufficientStock):
		response.ErrorResponse(c, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, couponModel.ErrCouponNotFound):
		response.ErrorResponse(c, http.StatusNotFound, "COUPON_NOT_FOUND", err.Error())
	case utils.IsValidationError(err):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
