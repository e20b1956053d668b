package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umeedai/umeed-api/internal/dto"
	"github.com/umeedai/umeed-api/internal/middleware"
	"github.com/umeedai/umeed-api/internal/models"
	appErrors "github.com/umeedai/umeed-api/pkg/errors"
	"github.com/umeedai/umeed-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context, query dto.ListStudentsQuery) ([]models.Student, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Student, error)
	Create(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error)
	Update(ctx context.Context, id string, req dto.UpdateStudentRequest) (*models.Student, error)
	Delete(ctx context.Context, id string) error
}

// StudentHandler exposes student CRUD endpoints.
type StudentHandler struct {
	service studentService
}

func NewStudentHandler(service studentService) *StudentHandler {
	return &StudentHandler{service: service}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param department query string false "Filter by department"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	query, ok := middleware.Validated(c, middleware.TargetQuery).(*dto.ListStudentsQuery)
	if !ok {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	students, pagination, err := h.service.List(c.Request.Context(), *query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Students retrieved successfully.", students, pagination)
}

// Get godoc
// @Summary Get a student by ID
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Student retrieved successfully.", student)
}

// Create godoc
// @Summary Register a student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body dto.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	req, ok := middleware.Validated(c, middleware.TargetBody).(*dto.CreateStudentRequest)
	if !ok {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	student, err := h.service.Create(c.Request.Context(), *req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Student created successfully.", student)
}

// Update godoc
// @Summary Update a student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param payload body dto.UpdateStudentRequest true "Partial student payload"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [put]
func (h *StudentHandler) Update(c *gin.Context) {
	params, ok := middleware.Validated(c, middleware.TargetParams).(*dto.StudentParams)
	if !ok {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	req, ok := middleware.Validated(c, middleware.TargetBody).(*dto.UpdateStudentRequest)
	if !ok {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	student, err := h.service.Update(c.Request.Context(), params.ID, *req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Student updated successfully.", student)
}

// Delete godoc
// @Summary Delete a student
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Student deleted successfully.", nil)
}
