package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/umeedai/umeed-api/internal/models"
)

// AcademicRepository persists assessment results.
type AcademicRepository struct {
	db *sqlx.DB
}

// NewAcademicRepository constructs an AcademicRepository.
func NewAcademicRepository(db *sqlx.DB) *AcademicRepository {
	return &AcademicRepository{db: db}
}

// Create inserts a new academic record. RecordedAt is server-assigned.
func (r *AcademicRepository) Create(ctx context.Context, record *models.AcademicRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.RecordedAt = time.Now().UTC()

	const query = `INSERT INTO academic_records (id, student_id, subject_code, assessment_type, score, max_score, attempt_number, recorded_at)
VALUES (:id, :student_id, :subject_code, :assessment_type, :score, :max_score, :attempt_number, :recorded_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("create academic record: %w", err)
	}
	return nil
}

// ListByStudent returns a student's academic records, newest first.
func (r *AcademicRepository) ListByStudent(ctx context.Context, studentID string) ([]models.AcademicRecord, error) {
	const query = `SELECT id, student_id, subject_code, assessment_type, score, max_score, attempt_number, recorded_at
FROM academic_records WHERE student_id = $1 ORDER BY recorded_at DESC`
	var records []models.AcademicRecord
	if err := r.db.SelectContext(ctx, &records, query, studentID); err != nil {
		return nil, fmt.Errorf("list academic records: %w", err)
	}
	return records, nil
}

// AverageScorePercentage computes the mean score (as a percentage of max)
// across a student's assessments. Returns false when no records exist.
func (r *AcademicRepository) AverageScorePercentage(ctx context.Context, studentID string) (float64, bool, error) {
	const query = `SELECT COALESCE(AVG(score / max_score * 100), 0), COUNT(*)
FROM academic_records WHERE student_id = $1 AND max_score > 0`
	var avg float64
	var count int
	if err := r.db.QueryRowxContext(ctx, query, studentID).Scan(&avg, &count); err != nil {
		return 0, false, fmt.Errorf("average score: %w", err)
	}
	return avg, count > 0, nil
}
