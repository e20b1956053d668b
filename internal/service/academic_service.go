package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/umeedai/umeed-api/internal/dto"
	"github.com/umeedai/umeed-api/internal/models"
	appErrors "github.com/umeedai/umeed-api/pkg/errors"
)

type academicRepository interface {
	Create(ctx context.Context, record *models.AcademicRecord) error
	ListByStudent(ctx context.Context, studentID string) ([]models.AcademicRecord, error)
}

// AcademicService handles assessment record use-cases.
type AcademicService struct {
	repo     academicRepository
	students attendanceStudentReader
	logger   *zap.Logger
}

// NewAcademicService constructs the academic service.
func NewAcademicService(repo academicRepository, students attendanceStudentReader, logger *zap.Logger) *AcademicService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AcademicService{repo: repo, students: students, logger: logger}
}

// Create records an assessment result for a known student.
func (s *AcademicService) Create(ctx context.Context, req dto.CreateAcademicRequest) (*models.AcademicRecord, error) {
	if err := s.ensureStudentExists(ctx, req.StudentID); err != nil {
		return nil, err
	}

	attempt := req.AttemptNumber
	if attempt < 1 {
		attempt = 1
	}
	record := &models.AcademicRecord{
		StudentID:      req.StudentID,
		SubjectCode:    req.SubjectCode,
		AssessmentType: models.AssessmentType(req.AssessmentType),
		Score:          *req.Score,
		MaxScore:       *req.MaxScore,
		AttemptNumber:  attempt,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create academic record")
	}
	return record, nil
}

// ListByStudent returns a student's assessment history.
func (s *AcademicService) ListByStudent(ctx context.Context, studentID string) ([]models.AcademicRecord, error) {
	if err := s.ensureStudentExists(ctx, studentID); err != nil {
		return nil, err
	}

	records, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list academic records")
	}
	return records, nil
}

func (s *AcademicService) ensureStudentExists(ctx context.Context, studentID string) error {
	if s.students == nil {
		return nil
	}
	if _, err := s.students.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify student")
	}
	return nil
}
