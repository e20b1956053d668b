package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/umeedai/umeed-api/internal/middleware"
	"github.com/umeedai/umeed-api/internal/models"
	appErrors "github.com/umeedai/umeed-api/pkg/errors"
	"github.com/umeedai/umeed-api/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

// AuthHandler exposes authentication endpoints.
type AuthHandler struct {
	service authService
}

func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @Summary Authenticate and obtain an access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req, ok := middleware.Validated(c, middleware.TargetBody).(*models.LoginRequest)
	if !ok {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	result, err := h.service.Login(c.Request.Context(), *req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Login successful.", result)
}

// Me godoc
// @Summary Return the authenticated user's claims
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.OK(c, "User retrieved successfully.", models.UserInfo{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
	})
}
