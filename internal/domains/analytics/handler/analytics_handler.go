package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"artstore-backend/internal/domains/analytics/model"
	"artstore-backend/internal/domains/analytics/service"
	"artstore-backend/internal/shared/middleware"
	"artstore-backend/internal/shared/response"
	"artstore-backend/internal/shared/utils"
)

type AnalyticsHandler struct {
	analyticsService service.ServiceInterface
}

func NewAnalyticsHandler(analyticsService service.ServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// RecordEvent handles POST /events
func (h *AnalyticsHandler) RecordEvent(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextKeySessionID)

	var req model.RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if err := h.analyticsService.RecordEvent(c.Request.Context(), sessionID, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"recorded": true})
}

// Stats handles GET /admin/analytics/stats?period=7d|30d|all
func (h *AnalyticsHandler) Stats(c *gin.Context) {
	stats, err := h.analyticsService.Stats(c.Request.Context(), c.Query("period"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stats)
}

// AbandonedSessions handles GET /admin/analytics/abandoned
func (h *AnalyticsHandler) AbandonedSessions(c *gin.Context) {
	sessions, err := h.analyticsService.AbandonedSessions(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, sessions)
}

func (h *AnalyticsHandler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidPeriod):
		response.BadRequest(c, err.Error())
	case utils.IsValidationError(err):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", err.Error())
	default:
		response.InternalServerError(c, "something went wrong")
	}
}
