package dto

// CreateStudentRequest is the payload for registering a monitored student.
type CreateStudentRequest struct {
	EnrollmentID string  `json:"enrollmentId" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Department   string  `json:"department" validate:"required"`
	Semester     int     `json:"semester" validate:"required,min=1,max=12"`
	Batch        string  `json:"batch" validate:"required"`
	MentorID     *string `json:"mentorId"`
}

// UpdateStudentRequest updates mutable student fields. The enrollment ID is
// immutable and deliberately absent.
type UpdateStudentRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Department *string `json:"department" validate:"omitempty,min=1"`
	Semester   *int    `json:"semester" validate:"omitempty,min=1,max=12"`
	Batch      *string `json:"batch" validate:"omitempty,min=1"`
	MentorID   *string `json:"mentorId"`
	Status     *string `json:"status" validate:"omitempty,oneof=active at-risk dropped"`
}

// StudentParams identifies a student in the URL path.
type StudentParams struct {
	ID string `uri:"id" validate:"required"`
}

// ListStudentsQuery captures pagination and filters for student listings.
// Page and Limit are pointers so an explicit zero is rejected by the min
// rules instead of being skipped as an absent value.
type ListStudentsQuery struct {
	Page       *int   `form:"page" validate:"omitempty,min=1"`
	Limit      *int   `form:"limit" validate:"omitempty,min=1,max=100"`
	Department string `form:"department"`
	Status     string `form:"status" validate:"omitempty,oneof=active at-risk dropped"`
}
