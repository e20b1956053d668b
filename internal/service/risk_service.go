package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/umeedai/umeed-api/internal/models"
	appErrors "github.com/umeedai/umeed-api/pkg/errors"
)

// Factor identifiers produced from stored student records. Thresholds
// registered under other factors are ignored until an observation source
// exists for them.
const (
	FactorAttendancePct = "attendance_pct"
	FactorAvgScorePct   = "avg_score_pct"
)

type riskThresholdReader interface {
	ListThresholds(ctx context.Context) ([]models.RiskThreshold, error)
}

type riskAttendanceReader interface {
	AveragePercentage(ctx context.Context, studentID string) (float64, bool, error)
}

type riskAcademicReader interface {
	AverageScorePercentage(ctx context.Context, studentID string) (float64, bool, error)
}

// RiskService evaluates a student's observed metrics against the
// configured thresholds. It implements no scoring model beyond the
// threshold comparisons themselves.
type RiskService struct {
	thresholds riskThresholdReader
	students   attendanceStudentReader
	attendance riskAttendanceReader
	academics  riskAcademicReader
	logger     *zap.Logger
}

// NewRiskService constructs the risk service.
func NewRiskService(thresholds riskThresholdReader, students attendanceStudentReader, attendance riskAttendanceReader, academics riskAcademicReader, logger *zap.Logger) *RiskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RiskService{
		thresholds: thresholds,
		students:   students,
		attendance: attendance,
		academics:  academics,
		logger:     logger,
	}
}

// AssessStudent compares the student's factor observations against every
// configured threshold and reports which factors triggered.
func (s *RiskService) AssessStudent(ctx context.Context, studentID string) (*models.RiskAssessment, error) {
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	observations, err := s.collectObservations(ctx, studentID)
	if err != nil {
		return nil, err
	}

	thresholds, err := s.thresholds.ListThresholds(ctx)
	if err != nil {
		return nil, err
	}

	triggered := make([]string, 0)
	comparable := 0
	for _, threshold := range thresholds {
		value, ok := observations[threshold.Factor]
		if !ok {
			continue
		}
		comparable++
		if holds(threshold.Operator, value, threshold.Value) {
			triggered = append(triggered, describeTrigger(threshold, value))
		}
	}

	score := 0
	if comparable > 0 {
		score = len(triggered) * 100 / comparable
	}

	return &models.RiskAssessment{
		StudentID:        studentID,
		RiskScore:        score,
		RiskLevel:        levelFor(score),
		FactorsTriggered: triggered,
	}, nil
}

func (s *RiskService) collectObservations(ctx context.Context, studentID string) (map[string]float64, error) {
	observations := make(map[string]float64, 2)

	attendance, ok, err := s.attendance.AveragePercentage(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate attendance")
	}
	if ok {
		observations[FactorAttendancePct] = attendance
	}

	scorePct, ok, err := s.academics.AverageScorePercentage(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate scores")
	}
	if ok {
		observations[FactorAvgScorePct] = scorePct
	}

	return observations, nil
}

func holds(op models.ThresholdOperator, observed, bound float64) bool {
	switch op {
	case models.OperatorLessThan:
		return observed < bound
	case models.OperatorGreaterThan:
		return observed > bound
	case models.OperatorEqual:
		return observed == bound
	default:
		return false
	}
}

func levelFor(score int) models.RiskLevel {
	switch {
	case score >= 67:
		return models.RiskLevelHigh
	case score >= 34:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

func describeTrigger(threshold models.RiskThreshold, observed float64) string {
	if threshold.Description != nil && *threshold.Description != "" {
		return *threshold.Description
	}
	return fmt.Sprintf("%s %s %g (observed %.1f)", threshold.Factor, threshold.Operator, threshold.Value, observed)
}
