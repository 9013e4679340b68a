package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cartModel "artstore-backend/internal/domains/cart/model"
	"artstore-backend/internal/domains/cart/service"
	productModel "artstore-backend/internal/domains/product/model"
	"artstore-backend/internal/shared"
	"artstore-backend/internal/shared/middleware"
	"artstore-backend/internal/shared/response"
	"artstore-backend/internal/shared/utils"
)

type CartHandler struct {
	cartService service.ServiceInterface
}

func NewCartHandler(cartService service.ServiceInterface) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func regionFromQuery(c *gin.Context) string {
	region := c.Query("region")
	if region != shared.RegionTR && region != shared.RegionGlobal {
		region = shared.RegionTR
	}
	return region
}

// Get handles GET /cart?region=TR|GLOBAL
func (h *CartHandler) Get(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextKeySessionID)

	cart, err := h.cartService.Get(c.Request.Context(), sessionID, regionFromQuery(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextKeySessionID)

	var req cartModel.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), sessionID, regionFromQuery(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// UpdateItem handles PATCH /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextKeySessionID)

	var req cartModel.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", err.Error())
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), sessionID, regionFromQuery(c), c.Param("id"), req.Quantity)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// RemoveItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextKeySessionID)

	cart, err := h.cartService.RemoveItem(c.Request.Context(), sessionID, regionFromQuery(c), c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, cart)
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextKeySessionID)

	if err := h.cartService.Clear(c.Request.Context(), sessionID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}

func (h *CartHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cartModel.ErrItemNotInCart):
		response.NotFound(c, err.Error())
	case errors.Is(err, productModel.ErrVariantNotFound), errors.Is(err, productModel.ErrProductNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, cartModel.ErrInvalidQuantity):
		response.BadRequest(c, err.Error())
	case utils.IsValidationError(err):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
