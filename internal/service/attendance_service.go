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

type attendanceRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error)
}

type attendanceStudentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// AttendanceService handles attendance record use-cases.
type AttendanceService struct {
	repo     attendanceRepository
	students attendanceStudentReader
	logger   *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, students attendanceStudentReader, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, students: students, logger: logger}
}

// Create records attendance for a known student.
func (s *AttendanceService) Create(ctx context.Context, req dto.CreateAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := s.ensureStudentExists(ctx, req.StudentID); err != nil {
		return nil, err
	}

	record := &models.AttendanceRecord{
		StudentID:            req.StudentID,
		SubjectCode:          req.SubjectCode,
		AttendancePercentage: *req.AttendancePercentage,
		TotalClasses:         req.TotalClasses,
		AttendedClasses:      req.AttendedClasses,
		RecordedAt:           req.RecordedAt,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create attendance record")
	}
	return record, nil
}

// ListByStudent returns a student's attendance history.
func (s *AttendanceService) ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error) {
	if err := s.ensureStudentExists(ctx, studentID); err != nil {
		return nil, err
	}

	records, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance records")
	}
	return records, nil
}

func (s *AttendanceService) ensureStudentExists(ctx context.Context, studentID string) error {
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
