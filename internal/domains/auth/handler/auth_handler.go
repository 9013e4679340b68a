package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"artstore-backend/internal/domains/auth/model"
	"artstore-backend/internal/domains/auth/service"
	"artstore-backend/internal/shared/response"
	"artstore-backend/internal/shared/utils"
)

type AuthHandler struct {
	authService service.ServiceInterface
}

func NewAuthHandler(authService service.ServiceInterface) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /admin/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidCredentials):
			response.Unauthorized(c, err.Error())
		case utils.IsValidationError(err):
			response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", err.Error())
		default:
			response.InternalServerError(c, "something went wrong")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}
