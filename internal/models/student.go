package models

import "time"

// StudentStatus tracks the academic standing of a monitored student.
type StudentStatus string

const (
	StudentStatusActive  StudentStatus = "active"
	StudentStatusAtRisk  StudentStatus = "at-risk"
	StudentStatusDropped StudentStatus = "dropped"
)

// Valid returns true when the status is a supported value.
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusActive, StudentStatusAtRisk, StudentStatusDropped:
		return true
	default:
		return false
	}
}

// Student represents an individual monitored for academic risk. Students are
// subjects of analysis, not system users.
type Student struct {
	ID           string        `db:"id" json:"id"`
	EnrollmentID string        `db:"enrollment_id" json:"enrollment_id"`
	Name         string        `db:"name" json:"name"`
	Department   string        `db:"department" json:"department"`
	Semester     int           `db:"semester" json:"semester"`
	Batch        string        `db:"batch" json:"batch"`
	MentorID     *string       `db:"mentor_id" json:"mentor_id,omitempty"`
	Status       StudentStatus `db:"status" json:"status"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Department string
	Status     StudentStatus
	Page       int
	PageSize   int
}
