package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/umeedai/umeed-api/internal/dto"
	"github.com/umeedai/umeed-api/internal/middleware"
	"github.com/umeedai/umeed-api/internal/models"
	appErrors "github.com/umeedai/umeed-api/pkg/errors"
	"github.com/umeedai/umeed-api/pkg/response"
)

type riskService interface {
	AssessStudent(ctx context.Context, studentID string) (*models.RiskAssessment, error)
}

// RiskHandler exposes risk assessment endpoints.
type RiskHandler struct {
	service riskService
}

func NewRiskHandler(service riskService) *RiskHandler {
	return &RiskHandler{service: service}
}

// Assess godoc
// @Summary Assess a student's risk against configured thresholds
// @Tags Risk
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /risk/{studentId} [get]
func (h *RiskHandler) Assess(c *gin.Context) {
	params, ok := middleware.Validated(c, middleware.TargetParams).(*dto.StudentIDParams)
	if !ok {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	assessment, err := h.service.AssessStudent(c.Request.Context(), params.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Risk assessment computed successfully.", assessment)
}
