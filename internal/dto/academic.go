package dto

// CreateAcademicRequest records an assessment result for a student.
type CreateAcademicRequest struct {
	StudentID      string   `json:"studentId" validate:"required"`
	SubjectCode    string   `json:"subjectCode" validate:"required"`
	AssessmentType string   `json:"assessmentType" validate:"required,oneof=quiz midsem endsem"`
	Score          *float64 `json:"score" validate:"required,gte=0"`
	MaxScore       *float64 `json:"maxScore" validate:"required,gt=0"`
	AttemptNumber  int      `json:"attemptNumber" validate:"omitempty,min=1"`
}
