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

type attendanceService interface {
	Create(ctx context.Context, req dto.CreateAttendanceRequest) (*models.AttendanceRecord, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error)
}

// AttendanceHandler exposes attendance record endpoints.
type AttendanceHandler struct {
	service attendanceService
}

func NewAttendanceHandler(service attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// Create godoc
// @Summary Record attendance for a student
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body dto.CreateAttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Create(c *gin.Context) {
	req, ok := middleware.Validated(c, middleware.TargetBody).(*dto.CreateAttendanceRequest)
	if !ok {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	record, err := h.service.Create(c.Request.Context(), *req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Attendance recorded successfully.", record)
}

// ListByStudent godoc
// @Summary List attendance records for a student
// @Tags Attendance
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /attendance/{studentId} [get]
func (h *AttendanceHandler) ListByStudent(c *gin.Context) {
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
	response.OK(c, "Attendance records retrieved successfully.", records)
}
