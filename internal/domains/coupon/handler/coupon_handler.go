package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"artstore-backend/internal/domains/coupon/model"
	"artstore-backend/internal/domains/coupon/service"
	"artstore-backend/internal/shared/response"
	"artstore-backend/internal/shared/utils"
)

type CouponHandler struct {
	couponService service.ServiceInterface
}

func NewCouponHandler(couponService service.ServiceInterface) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

// =====================================================
// STOREFRONT
// =====================================================

// ValidateCoupon handles POST /checkout/validate-coupon
func (h *CouponHandler) ValidateCoupon(c *gin.Context) {
	var req model.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	quote, err := h.couponService.ValidateCoupon(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, quote)
}

// ListRunningCampaigns handles GET /campaigns
func (h *CouponHandler) ListRunningCampaigns(c *gin.Context) {
	campaigns, err := h.couponService.ListRunningCampaigns(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, campaigns)
}

// GetCampaignBySlug handles GET /campaigns/:slug
func (h *CouponHandler) GetCampaignBySlug(c *gin.Context) {
	campaign, err := h.couponService.GetCampaignBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, campaign)
}

// =====================================================
// ADMIN
// =====================================================

// Create handles POST /admin/coupons
func (h *CouponHandler) Create(c *gin.Context) {
	var req model.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	coupon, err := h.couponService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, coupon)
}

// List handles GET /admin/coupons
func (h *CouponHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	coupons, total, err := h.couponService.List(c.Request.Context(), page, limit)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, coupons, &response.Meta{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// Update handles PATCH /admin/coupons/:id
func (h *CouponHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid coupon id")
		return
	}

	var req model.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	coupon, err := h.couponService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, coupon)
}

// Delete handles DELETE /admin/coupons/:id
func (h *CouponHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid coupon id")
		return
	}

	if err := h.couponService.Deactivate(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deactivated": true})
}

// CreateCampaign handles POST /admin/campaigns
func (h *CouponHandler) CreateCampaign(c *gin.Context) {
	var req model.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	campaign, err := h.couponService.CreateCampaign(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, campaign)
}

// ListCampaigns handles GET /admin/campaigns
func (h *CouponHandler) ListCampaigns(c *gin.Context) {
	campaigns, err := h.couponService.ListCampaigns(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, campaigns)
}

// DeleteCampaign handles DELETE /admin/campaigns/:id
func (h *CouponHandler) DeleteCampaign(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid campaign id")
		return
	}

	if err := h.couponService.DeleteCampaign(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *CouponHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrCouponNotFound):
		response.ErrorResponse(c, http.StatusNotFound, "COUPON_NOT_FOUND", err.Error())
	case errors.Is(err, model.ErrCouponNotStarted):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "COUPON_NOT_STARTED", err.Error())
	case errors.Is(err, model.ErrCouponExpired):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "COUPON_EXPIRED", err.Error())
	case errors.Is(err, model.ErrCouponLimitReached):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "COUPON_LIMIT_REACHED", err.Error())
	case errors.Is(err, model.ErrCouponNotAuthorized):
		response.ErrorResponse(c, http.StatusForbidden, "COUPON_NOT_AUTHORIZED", err.Error())
	case errors.Is(err, model.ErrCampaignNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrCodeAlreadyExists), errors.Is(err, model.ErrCampaignSlugExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrCampaignCouponMissing):
		response.BadRequest(c, err.Error())
	case utils.IsValidationError(err):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
