package models

import "time"

// AttendanceRecord tracks per-subject attendance for a student.
type AttendanceRecord struct {
	ID                   string    `db:"id" json:"id"`
	StudentID            string    `db:"student_id" json:"student_id"`
	SubjectCode          string    `db:"subject_code" json:"subject_code"`
	AttendancePercentage float64   `db:"attendance_percentage" json:"attendance_percentage"`
	TotalClasses         int       `db:"total_classes" json:"total_classes"`
	AttendedClasses      int       `db:"attended_classes" json:"attended_classes"`
	RecordedAt           time.Time `db:"recorded_at" json:"recorded_at"`
}
