package models

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusCompleted EnrollmentStatus = "completed"
	EnrollmentStatusDropped   EnrollmentStatus = "dropped"
)

// EnrollmentSummary is the slice of an enrollment surfaced in the people
// directory: a student's course joined through enrollments.
type EnrollmentSummary struct {
	StudentID        string           `db:"student_id"`
	CourseName       string           `db:"course_name"`
	EnrollmentStatus EnrollmentStatus `db:"enrollment_status"`
}
