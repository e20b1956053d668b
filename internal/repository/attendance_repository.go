package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/umeedai/umeed-api/internal/models"
)

// AttendanceRepository persists per-subject attendance records.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create inserts a new attendance record.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.RecordedAt.IsZero() {
		record.RecordedAt = time.Now().UTC()
	}

	const query = `INSERT INTO attendance_records (id, student_id, subject_code, attendance_percentage, total_classes, attended_classes, recorded_at)
VALUES (:id, :student_id, :subject_code, :attendance_percentage, :total_classes, :attended_classes, :recorded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create attendance record: %w", err)
	}
	return nil
}

// ListByStudent returns a student's attendance records, newest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error) {
	const query = `SELECT id, student_id, subject_code, attendance_percentage, total_classes, attended_classes, recorded_at
FROM attendance_records WHERE student_id = $1 ORDER BY recorded_at DESC`
	var records []models.AttendanceRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	return records, nil
}

// AveragePercentage computes the mean attendance percentage for a student
// across subjects. Returns false when no records exist.
func (r *AttendanceRepository) AveragePercentage(ctx context.Context, studentID string) (float64, bool, error) {
	const query = `SELECT COALESCE(AVG(attendance_percentage), 0), COUNT(*) FROM attendance_records WHERE student_id = $1`
	var avg float64
	var count int
	if err := r.db.QueryRowxContext(ctx, query, studentID).Scan(&avg, &count); err != nil {
		return 0, false, fmt.Errorf("average attendance: %w", err)
	}
	return avg, count > 0, nil
}
