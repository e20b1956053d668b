package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeedai/umeed-api/internal/dto"
	"github.com/umeedai/umeed-api/internal/models"
	"github.com/umeedai/umeed-api/pkg/audit"
	appErrors "github.com/umeedai/umeed-api/pkg/errors"
)

type thresholdRepoMock struct {
	createErr    error
	findResp     *models.RiskThreshold
	findErr      error
	updateResp   *models.RiskThreshold
	updateErr    error
	listResp     []models.RiskThreshold
	listErr      error
	deletedCount int64
	deleteErr    error

	created []*models.RiskThreshold
}

func (m *thresholdRepoMock) Create(ctx context.Context, threshold *models.RiskThreshold) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, threshold)
	return nil
}

func (m *thresholdRepoMock) FindByFactor(ctx context.Context, factor string) (*models.RiskThreshold, error) {
	return m.findResp, m.findErr
}

func (m *thresholdRepoMock) UpdateByFactor(ctx context.Context, factor string, update models.ThresholdUpdate) (*models.RiskThreshold, error) {
	return m.updateResp, m.updateErr
}

func (m *thresholdRepoMock) List(ctx context.Context) ([]models.RiskThreshold, error) {
	return m.listResp, m.listErr
}

func (m *thresholdRepoMock) DeleteAll(ctx context.Context) (int64, error) {
	return m.deletedCount, m.deleteErr
}

type auditWriterMock struct {
	appendErr error
	entries   []audit.Entry
}

func (m *auditWriterMock) Append(entry audit.Entry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

type cacheMock struct {
	store   map[string][]byte
	deleted []string
}

func (m *cacheMock) Get(ctx context.Context, key string, dest interface{}) error {
	return appErrors.ErrCacheMiss
}

func (m *cacheMock) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (m *cacheMock) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func newTestConfigService(repo *thresholdRepoMock, auditor *auditWriterMock) *ConfigService {
	return NewConfigService(repo, auditor, nil, nil, nil, ConfigServiceConfig{})
}

func TestConfigServiceCreateThresholdAudits(t *testing.T) {
	repo := &thresholdRepoMock{}
	auditor := &auditWriterMock{}
	svc := newTestConfigService(repo, auditor)

	threshold, err := svc.CreateThreshold(context.Background(), dto.CreateThresholdRequest{
		Factor:   "attendance_pct",
		Operator: "LT",
		Value:    floatPtr(75),
	}, "admin@umeed.ai")
	require.NoError(t, err)
	require.NotNil(t, threshold)
	assert.Equal(t, "attendance_pct", threshold.Factor)
	assert.Equal(t, models.OperatorLessThan, threshold.Operator)

	require.Len(t, auditor.entries, 1)
	entry := auditor.entries[0]
	assert.Equal(t, models.AuditActionCreateThreshold, entry.Action)
	assert.Equal(t, "admin@umeed.ai", entry.User)
	details, ok := entry.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, threshold, details["newValue"])
}

func TestConfigServiceCreateThresholdConflictUnaudited(t *testing.T) {
	conflict := appErrors.Clone(appErrors.ErrConflict, `threshold for factor "attendance_pct" already exists`)
	repo := &thresholdRepoMock{createErr: conflict}
	auditor := &auditWriterMock{}
	svc := newTestConfigService(repo, auditor)

	_, err := svc.CreateThreshold(context.Background(), dto.CreateThresholdRequest{
		Factor:   "attendance_pct",
		Operator: "LT",
		Value:    floatPtr(75),
	}, "admin@umeed.ai")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Empty(t, auditor.entries)
}

func TestConfigServiceCreateThresholdUnknownOperatorRejected(t *testing.T) {
	repo := &thresholdRepoMock{}
	auditor := &auditWriterMock{}
	svc := newTestConfigService(repo, auditor)

	_, err := svc.CreateThreshold(context.Background(), dto.CreateThresholdRequest{
		Factor:   "attendance_pct",
		Operator: "BETWEEN",
		Value:    floatPtr(75),
	}, "admin@umeed.ai")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, repo.created)
	assert.Empty(t, auditor.entries)
}

func TestConfigServiceCreateThresholdAuditFailureDoesNotFail(t *testing.T) {
	repo := &thresholdRepoMock{}
	auditor := &auditWriterMock{appendErr: errors.New("disk full")}
	svc := newTestConfigService(repo, auditor)

	threshold, err := svc.CreateThreshold(context.Background(), dto.CreateThresholdRequest{
		Factor:   "avg_score_pct",
		Operator: "LT",
		Value:    floatPtr(40),
	}, "admin@umeed.ai")
	require.NoError(t, err)
	require.NotNil(t, threshold)
	require.Len(t, repo.created, 1)
}

func TestConfigServiceUpdateThresholdRecordsBeforeAndAfter(t *testing.T) {
	old := &models.RiskThreshold{Factor: "attendance_pct", Operator: models.OperatorLessThan, Value: 75}
	updated := &models.RiskThreshold{Factor: "attendance_pct", Operator: models.OperatorLessThan, Value: 60}
	repo := &thresholdRepoMock{findResp: old, updateResp: updated}
	auditor := &auditWriterMock{}
	svc := newTestConfigService(repo, auditor)

	result, err := svc.UpdateThresholdByFactor(context.Background(), "attendance_pct", dto.UpdateThresholdRequest{
		Value: floatPtr(60),
	}, "admin@umeed.ai")
	require.NoError(t, err)
	assert.Equal(t, updated, result)

	require.Len(t, auditor.entries, 1)
	entry := auditor.entries[0]
	assert.Equal(t, models.AuditActionUpdateThreshold, entry.Action)
	change, ok := entry.Details.(models.ThresholdChange)
	require.True(t, ok)
	assert.Equal(t, "attendance_pct", change.Factor)
	assert.Equal(t, old, change.OldValue)
	assert.Equal(t, updated, change.NewValue)
}

func TestConfigServiceUpdateThresholdEmptyPayloadRejected(t *testing.T) {
	repo := &thresholdRepoMock{}
	auditor := &auditWriterMock{}
	svc := newTestConfigService(repo, auditor)

	_, err := svc.UpdateThresholdByFactor(context.Background(), "attendance_pct", dto.UpdateThresholdRequest{}, "admin@umeed.ai")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, auditor.entries)
}

func TestConfigServiceUpdateThresholdUnknownOperatorRejected(t *testing.T) {
	repo := &thresholdRepoMock{}
	auditor := &auditWriterMock{}
	svc := newTestConfigService(repo, auditor)

	_, err := svc.UpdateThresholdByFactor(context.Background(), "attendance_pct", dto.UpdateThresholdRequest{
		Operator: strPtr("GTE"),
	}, "admin@umeed.ai")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, auditor.entries)
}

func TestConfigServiceUpdateThresholdNotFoundNoAudit(t *testing.T) {
	repo := &thresholdRepoMock{findErr: sql.ErrNoRows}
	auditor := &auditWriterMock{}
	svc := newTestConfigService(repo, auditor)

	_, err := svc.UpdateThresholdByFactor(context.Background(), "missing_factor", dto.UpdateThresholdRequest{
		Value: floatPtr(10),
	}, "admin@umeed.ai")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Empty(t, auditor.entries)
}

func TestConfigServiceGetThresholdNotFound(t *testing.T) {
	repo := &thresholdRepoMock{findErr: sql.ErrNoRows}
	svc := newTestConfigService(repo, &auditWriterMock{})

	_, err := svc.GetThresholdByFactor(context.Background(), "missing_factor")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestConfigServiceListThresholdsNoAudit(t *testing.T) {
	repo := &thresholdRepoMock{listResp: []models.RiskThreshold{
		{Factor: "attendance_pct", Operator: models.OperatorLessThan, Value: 75},
	}}
	auditor := &auditWriterMock{}
	svc := newTestConfigService(repo, auditor)

	thresholds, err := svc.ListThresholds(context.Background())
	require.NoError(t, err)
	require.Len(t, thresholds, 1)
	assert.Empty(t, auditor.entries)
}

func TestConfigServiceResetThresholdsAuditsDeletedCount(t *testing.T) {
	repo := &thresholdRepoMock{deletedCount: 3}
	auditor := &auditWriterMock{}
	svc := newTestConfigService(repo, auditor)

	result, err := svc.ResetThresholds(context.Background(), "admin@umeed.ai")
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.DeletedCount)

	require.Len(t, auditor.entries, 1)
	entry := auditor.entries[0]
	assert.Equal(t, models.AuditActionResetThresholds, entry.Action)
	details, ok := entry.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, int64(3), details["deletedCount"])
}

func TestConfigServiceResetThresholdsZeroCount(t *testing.T) {
	repo := &thresholdRepoMock{deletedCount: 0}
	auditor := &auditWriterMock{}
	svc := newTestConfigService(repo, auditor)

	result, err := svc.ResetThresholds(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), result.DeletedCount)
	require.Len(t, auditor.entries, 1)
	assert.Equal(t, models.AuditActorSystem, auditor.entries[0].User)
}

func TestConfigServiceResetInvalidatesListCache(t *testing.T) {
	repo := &thresholdRepoMock{deletedCount: 1}
	cache := &cacheMock{}
	svc := NewConfigService(repo, &auditWriterMock{}, cache, nil, nil, ConfigServiceConfig{CacheEnabled: true})

	_, err := svc.ResetThresholds(context.Background(), "admin@umeed.ai")
	require.NoError(t, err)
	assert.Contains(t, cache.deleted, "thresholds:all")
}

func TestConfigServiceExportThresholdsCSV(t *testing.T) {
	repo := &thresholdRepoMock{listResp: []models.RiskThreshold{
		{Factor: "attendance_pct", Operator: models.OperatorLessThan, Value: 75, Description: strPtr("low attendance")},
	}}
	svc := newTestConfigService(repo, &auditWriterMock{})

	payload, contentType, err := svc.ExportThresholds(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(payload), "attendance_pct")
	assert.Contains(t, string(payload), "LT")
}

func TestConfigServiceExportThresholdsUnknownFormat(t *testing.T) {
	repo := &thresholdRepoMock{}
	svc := newTestConfigService(repo, &auditWriterMock{})

	_, _, err := svc.ExportThresholds(context.Background(), "xlsx")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
