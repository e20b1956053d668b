package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/umeedai/umeed-api/internal/dto"
	"github.com/umeedai/umeed-api/internal/middleware"
	"github.com/umeedai/umeed-api/internal/models"
	appErrors "github.com/umeedai/umeed-api/pkg/errors"
	"github.com/umeedai/umeed-api/pkg/response"
)

type configService interface {
	CreateThreshold(ctx context.Context, req dto.CreateThresholdRequest, actor string) (*models.RiskThreshold, error)
	UpdateThresholdByFactor(ctx context.Context, factor string, req dto.UpdateThresholdRequest, actor string) (*models.RiskThreshold, error)
	GetThresholdByFactor(ctx context.Context, factor string) (*models.RiskThreshold, error)
	ListThresholds(ctx context.Context) ([]models.RiskThreshold, error)
	ResetThresholds(ctx context.Context, actor string) (*models.ResetResult, error)
	ExportThresholds(ctx context.Context, format string) ([]byte, string, error)
}

// ConfigHandler exposes the risk threshold configuration endpoints.
type ConfigHandler struct {
	service configService
}

// NewConfigHandler builds a new handler.
func NewConfigHandler(service configService) *ConfigHandler {
	return &ConfigHandler{service: service}
}

// CreateThreshold godoc
// @Summary Create a risk threshold
// @Tags Configuration
// @Accept json
// @Produce json
// @Param payload body dto.CreateThresholdRequest true "Threshold payload"
// @Success 201 {object} response.Envelope
// @Router /config/thresholds [post]
func (h *ConfigHandler) CreateThreshold(c *gin.Context) {
	req, ok := middleware.Validated(c, middleware.TargetBody).(*dto.CreateThresholdRequest)
	if !ok {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	threshold, err := h.service.CreateThreshold(c.Request.Context(), *req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Threshold created successfully.", threshold)
}

// UpdateThreshold godoc
// @Summary Update a risk threshold by factor
// @Tags Configuration
// @Accept json
// @Produce json
// @Param factor path string true "Threshold factor"
// @Param payload body dto.UpdateThresholdRequest true "Partial threshold payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /config/thresholds/{factor} [put]
func (h *ConfigHandler) UpdateThreshold(c *gin.Context) {
	params, ok := middleware.Validated(c, middleware.TargetParams).(*dto.ThresholdParams)
	if !ok {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	req, ok := middleware.Validated(c, middleware.TargetBody).(*dto.UpdateThresholdRequest)
	if !ok {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	threshold, err := h.service.UpdateThresholdByFactor(c.Request.Context(), params.Factor, *req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Threshold updated successfully.", threshold)
}

// GetThreshold godoc
// @Summary Get a risk threshold by factor
// @Tags Configuration
// @Produce json
// @Param factor path string true "Threshold factor"
// @Success 200 {object} response.Envelope
// @Router /config/thresholds/{factor} [get]
func (h *ConfigHandler) GetThreshold(c *gin.Context) {
	threshold, err := h.service.GetThresholdByFactor(c.Request.Context(), c.Param("factor"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Threshold retrieved successfully.", threshold)
}

// ListThresholds godoc
// @Summary List risk thresholds
// @Tags Configuration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /config/thresholds [get]
func (h *ConfigHandler) ListThresholds(c *gin.Context) {
	thresholds, err := h.service.ListThresholds(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Thresholds retrieved successfully.", thresholds)
}

// ResetThresholds godoc
// @Summary Delete every risk threshold
// @Tags Configuration
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /config/thresholds [delete]
func (h *ConfigHandler) ResetThresholds(c *gin.Context) {
	result, err := h.service.ResetThresholds(c.Request.Context(), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "All thresholds reset successfully.", result)
}

// ExportThresholds godoc
// @Summary Export thresholds as CSV or PDF
// @Tags Configuration
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format (csv or pdf)"
// @Success 200 {file} byte
// @Router /config/thresholds/export [get]
func (h *ConfigHandler) ExportThresholds(c *gin.Context) {
	query, ok := middleware.Validated(c, middleware.TargetQuery).(*dto.ExportQuery)
	if !ok {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	payload, contentType, err := h.service.ExportThresholds(c.Request.Context(), query.Format)
	if err != nil {
		response.Error(c, err)
		return
	}

	extension := "csv"
	if contentType == "application/pdf" {
		extension = "pdf"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="thresholds.%s"`, extension))
	c.Data(http.StatusOK, contentType, payload)
}
