package dto

import "time"

// CreateAttendanceRequest records per-subject attendance for a student.
type CreateAttendanceRequest struct {
	StudentID            string    `json:"studentId" validate:"required"`
	SubjectCode          string    `json:"subjectCode" validate:"required"`
	AttendancePercentage *float64  `json:"attendancePercentage" validate:"required,gte=0,lte=100"`
	TotalClasses         int       `json:"totalClasses" validate:"gte=0"`
	AttendedClasses      int       `json:"attendedClasses" validate:"gte=0"`
	RecordedAt           time.Time `json:"recordedAt" validate:"required"`
}

// StudentIDParams identifies a student in record lookups.
type StudentIDParams struct {
	StudentID string `uri:"studentId" validate:"required"`
}
