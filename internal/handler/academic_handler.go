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

type academicService interface {
	Create(ctx context.Context, req dto.CreateAcademicRequest) (*models.AcademicRecord, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.AcademicRecord, error)
}

// AcademicHandler exposes academic record endpoints.
type AcademicHandler struct {
	service academicService
}

func NewAcademicHandler(service academicService) *AcademicHandler {
	return &AcademicHandler{service: service}
}

// Create godoc
// @Summary Record an assessment score for a student
// @Tags Academics
// @Accept json
// @Produce json
// @Param payload body dto.CreateAcademicRequest true "Academic record payload"
// @Success 201 {object} response.Envelope
// @Router /academics [post]
func (h *AcademicHandler) Create(c *gin.Context) {
	req, ok := middleware.Validated(c, middleware.TargetBody).(*dto.CreateAcademicRequest)
	if !ok {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	record, err := h.service.Create(c.Request.Context(), *req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Academic record created successfully.", record)
}

// ListByStudent godoc
// @Summary List academic records for a student
// @Tags Academics
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /academics/{studentId} [get]
func (h *AcademicHandler) ListByStudent(c *gin.Context) {
	params, ok := middleware.Validated(c, middleware.TargetParams).(*dto.StudentIDParams)
	if !ok {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	records, err := h.service.ListByStudent(c.Request.Context(), params.StudentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Academic records retrieved successfully.", records)
}
