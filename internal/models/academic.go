package models

import "time"

// AssessmentType identifies the kind of academic assessment recorded.
type AssessmentType string

const (
	AssessmentQuiz   AssessmentType = "quiz"
	AssessmentMidsem AssessmentType = "midsem"
	AssessmentEndsem AssessmentType = "endsem"
)

// Valid returns true when the assessment type is supported.
func (t AssessmentType) Valid() bool {
	switch t {
	case AssessmentQuiz, AssessmentMidsem, AssessmentEndsem:
		return true
	default:
		return false
	}
}

// AcademicRecord stores a single assessment result for a student.
type AcademicRecord struct {
	ID             string         `db:"id" json:"id"`
	StudentID      string         `db:"student_id" json:"student_id"`
	SubjectCode    string         `db:"subject_code" json:"subject_code"`
	AssessmentType AssessmentType `db:"assessment_type" json:"assessment_type"`
	Score          float64        `db:"score" json:"score"`
	MaxScore       float64        `db:"max_score" json:"max_score"`
	AttemptNumber  int            `db:"attempt_number" json:"attempt_number"`
	RecordedAt     time.Time      `db:"recorded_at" json:"recorded_at"`
}
