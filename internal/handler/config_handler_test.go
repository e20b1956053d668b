package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeedai/umeed-api/internal/dto"
	"github.com/umeedai/umeed-api/internal/middleware"
	"github.com/umeedai/umeed-api/internal/models"
	appErrors "github.com/umeedai/umeed-api/pkg/errors"
	"github.com/umeedai/umeed-api/pkg/response"
)

type configServiceMock struct {
	createResp *models.RiskThreshold
	createErr  error
	updateResp *models.RiskThreshold
	updateErr  error
	getResp    *models.RiskThreshold
	getErr     error
	listResp   []models.RiskThreshold
	resetResp  *models.ResetResult
	exportResp []byte
	exportType string
	exportErr  error

	lastActor string
}

func (m *configServiceMock) CreateThreshold(ctx context.Context, req dto.CreateThresholdRequest, actor string) (*models.RiskThreshold, error) {
	m.lastActor = actor
	return m.createResp, m.createErr
}

func (m *configServiceMock) UpdateThresholdByFactor(ctx context.Context, factor string, req dto.UpdateThresholdRequest, actor string) (*models.RiskThreshold, error) {
	m.lastActor = actor
	return m.updateResp, m.updateErr
}

func (m *configServiceMock) GetThresholdByFactor(ctx context.Context, factor string) (*models.RiskThreshold, error) {
	return m.getResp, m.getErr
}

func (m *configServiceMock) ListThresholds(ctx context.Context) ([]models.RiskThreshold, error) {
	return m.listResp, nil
}

func (m *configServiceMock) ResetThresholds(ctx context.Context, actor string) (*models.ResetResult, error) {
	m.lastActor = actor
	return m.resetResp, nil
}

func (m *configServiceMock) ExportThresholds(ctx context.Context, format string) ([]byte, string, error) {
	if m.exportErr != nil {
		return nil, "", m.exportErr
	}
	return m.exportResp, m.exportType, nil
}

func floatPtr(v float64) *float64 { return &v }

func newConfigTestContext(t *testing.T, method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, path, nil)
	require.NoError(t, err)
	c.Request = req
	return c, w
}

func TestConfigHandlerCreateThresholdReturns201(t *testing.T) {
	svc := &configServiceMock{createResp: &models.RiskThreshold{Factor: "attendance_pct", Operator: models.OperatorLessThan, Value: 75}}
	handler := NewConfigHandler(svc)

	c, w := newConfigTestContext(t, http.MethodPost, "/config/thresholds")
	c.Set("validated:body", &dto.CreateThresholdRequest{Factor: "attendance_pct", Operator: "LT", Value: floatPtr(75)})
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-1", Email: "admin@umeed.ai", Role: models.RoleAdmin})

	handler.CreateThreshold(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "admin@umeed.ai", svc.lastActor)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "Threshold created successfully.", envelope.Message)
}

func TestConfigHandlerCreateThresholdConflict(t *testing.T) {
	svc := &configServiceMock{createErr: appErrors.Clone(appErrors.ErrConflict, `threshold for factor "attendance_pct" already exists`)}
	handler := NewConfigHandler(svc)

	c, w := newConfigTestContext(t, http.MethodPost, "/config/thresholds")
	c.Set("validated:body", &dto.CreateThresholdRequest{Factor: "attendance_pct", Operator: "LT", Value: floatPtr(75)})

	handler.CreateThreshold(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestConfigHandlerUpdateThresholdNotFound(t *testing.T) {
	svc := &configServiceMock{updateErr: appErrors.Clone(appErrors.ErrNotFound, "threshold not found")}
	handler := NewConfigHandler(svc)

	c, w := newConfigTestContext(t, http.MethodPut, "/config/thresholds/missing_factor")
	c.Set("validated:params", &dto.ThresholdParams{Factor: "missing_factor"})
	c.Set("validated:body", &dto.UpdateThresholdRequest{Value: floatPtr(10)})

	handler.UpdateThreshold(c)

	require.Equal(t, http.StatusNotFound, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
}

func TestConfigHandlerUpdateThresholdMissingValidatedPayload(t *testing.T) {
	handler := NewConfigHandler(&configServiceMock{})

	c, w := newConfigTestContext(t, http.MethodPut, "/config/thresholds/attendance_pct")

	handler.UpdateThreshold(c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestConfigHandlerGetThresholdByFactor(t *testing.T) {
	svc := &configServiceMock{getResp: &models.RiskThreshold{Factor: "attendance_pct", Operator: models.OperatorLessThan, Value: 75}}
	handler := NewConfigHandler(svc)

	c, w := newConfigTestContext(t, http.MethodGet, "/config/thresholds/attendance_pct")
	c.Params = gin.Params{{Key: "factor", Value: "attendance_pct"}}

	handler.GetThreshold(c)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestConfigHandlerResetThresholdsReportsCount(t *testing.T) {
	svc := &configServiceMock{resetResp: &models.ResetResult{DeletedCount: 2}}
	handler := NewConfigHandler(svc)

	c, w := newConfigTestContext(t, http.MethodDelete, "/config/thresholds")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-1", Email: "admin@umeed.ai", Role: models.RoleAdmin})

	handler.ResetThresholds(c)

	require.Equal(t, http.StatusOK, w.Code)
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["deleted_count"])
}

func TestConfigHandlerResetThresholdsDefaultsActorToSystem(t *testing.T) {
	svc := &configServiceMock{resetResp: &models.ResetResult{}}
	handler := NewConfigHandler(svc)

	c, _ := newConfigTestContext(t, http.MethodDelete, "/config/thresholds")

	handler.ResetThresholds(c)
	assert.Equal(t, models.AuditActorSystem, svc.lastActor)
}

func TestConfigHandlerExportSetsAttachmentHeaders(t *testing.T) {
	svc := &configServiceMock{exportResp: []byte("factor,operator\n"), exportType: "text/csv"}
	handler := NewConfigHandler(svc)

	c, w := newConfigTestContext(t, http.MethodGet, "/config/thresholds/export?format=csv")
	c.Set("validated:query", &dto.ExportQuery{Format: "csv"})

	handler.ExportThresholds(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "thresholds.csv")
}

func TestConfigHandlerExportUnknownFormat(t *testing.T) {
	svc := &configServiceMock{exportErr: appErrors.Clone(appErrors.ErrValidation, `unsupported export format "xlsx"`)}
	handler := NewConfigHandler(svc)

	c, w := newConfigTestContext(t, http.MethodGet, "/config/thresholds/export?format=xlsx")
	c.Set("validated:query", &dto.ExportQuery{Format: "xlsx"})

	handler.ExportThresholds(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConfigHandlerExportMissingValidatedQuery(t *testing.T) {
	handler := NewConfigHandler(&configServiceMock{})

	c, w := newConfigTestContext(t, http.MethodGet, "/config/thresholds/export")

	handler.ExportThresholds(c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
