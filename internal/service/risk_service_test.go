package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umeedai/umeed-api/internal/models"
	appErrors "github.com/umeedai/umeed-api/pkg/errors"
)

type riskThresholdsMock struct {
	thresholds []models.RiskThreshold
}

func (m *riskThresholdsMock) ListThresholds(ctx context.Context) ([]models.RiskThreshold, error) {
	return m.thresholds, nil
}

type riskStudentsMock struct {
	err error
}

func (m *riskStudentsMock) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.Student{ID: id}, nil
}

type riskAttendanceMock struct {
	avg   float64
	found bool
}

func (m *riskAttendanceMock) AveragePercentage(ctx context.Context, studentID string) (float64, bool, error) {
	return m.avg, m.found, nil
}

type riskAcademicsMock struct {
	avg   float64
	found bool
}

func (m *riskAcademicsMock) AverageScorePercentage(ctx context.Context, studentID string) (float64, bool, error) {
	return m.avg, m.found, nil
}

func TestRiskServiceAssessStudentAllFactorsTriggered(t *testing.T) {
	svc := NewRiskService(
		&riskThresholdsMock{thresholds: []models.RiskThreshold{
			{Factor: FactorAttendancePct, Operator: models.OperatorLessThan, Value: 75},
			{Factor: FactorAvgScorePct, Operator: models.OperatorLessThan, Value: 40},
		}},
		&riskStudentsMock{},
		&riskAttendanceMock{avg: 50, found: true},
		&riskAcademicsMock{avg: 30, found: true},
		nil,
	)

	assessment, err := svc.AssessStudent(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, 100, assessment.RiskScore)
	assert.Equal(t, models.RiskLevelHigh, assessment.RiskLevel)
	require.Len(t, assessment.FactorsTriggered, 2)
}

func TestRiskServiceAssessStudentPartialTrigger(t *testing.T) {
	svc := NewRiskService(
		&riskThresholdsMock{thresholds: []models.RiskThreshold{
			{Factor: FactorAttendancePct, Operator: models.OperatorLessThan, Value: 75},
			{Factor: FactorAvgScorePct, Operator: models.OperatorLessThan, Value: 40},
		}},
		&riskStudentsMock{},
		&riskAttendanceMock{avg: 50, found: true},
		&riskAcademicsMock{avg: 80, found: true},
		nil,
	)

	assessment, err := svc.AssessStudent(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, 50, assessment.RiskScore)
	assert.Equal(t, models.RiskLevelMedium, assessment.RiskLevel)
}

func TestRiskServiceAssessStudentNoObservations(t *testing.T) {
	svc := NewRiskService(
		&riskThresholdsMock{thresholds: []models.RiskThreshold{
			{Factor: FactorAttendancePct, Operator: models.OperatorLessThan, Value: 75},
		}},
		&riskStudentsMock{},
		&riskAttendanceMock{},
		&riskAcademicsMock{},
		nil,
	)

	assessment, err := svc.AssessStudent(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, 0, assessment.RiskScore)
	assert.Equal(t, models.RiskLevelLow, assessment.RiskLevel)
	assert.Empty(t, assessment.FactorsTriggered)
}

func TestRiskServiceAssessStudentUnknownFactorIgnored(t *testing.T) {
	svc := NewRiskService(
		&riskThresholdsMock{thresholds: []models.RiskThreshold{
			{Factor: "library_visits", Operator: models.OperatorLessThan, Value: 2},
			{Factor: FactorAttendancePct, Operator: models.OperatorLessThan, Value: 75},
		}},
		&riskStudentsMock{},
		&riskAttendanceMock{avg: 90, found: true},
		&riskAcademicsMock{},
		nil,
	)

	assessment, err := svc.AssessStudent(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, 0, assessment.RiskScore)
}

func TestRiskServiceAssessStudentUsesThresholdDescription(t *testing.T) {
	description := "Attendance below the safe floor"
	svc := NewRiskService(
		&riskThresholdsMock{thresholds: []models.RiskThreshold{
			{Factor: FactorAttendancePct, Operator: models.OperatorLessThan, Value: 75, Description: &description},
		}},
		&riskStudentsMock{},
		&riskAttendanceMock{avg: 50, found: true},
		&riskAcademicsMock{},
		nil,
	)

	assessment, err := svc.AssessStudent(context.Background(), "s-1")
	require.NoError(t, err)
	require.Len(t, assessment.FactorsTriggered, 1)
	assert.Equal(t, description, assessment.FactorsTriggered[0])
}

func TestRiskServiceAssessStudentMissingStudent(t *testing.T) {
	svc := NewRiskService(
		&riskThresholdsMock{},
		&riskStudentsMock{err: sql.ErrNoRows},
		&riskAttendanceMock{},
		&riskAcademicsMock{},
		nil,
	)

	_, err := svc.AssessStudent(context.Background(), "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}
