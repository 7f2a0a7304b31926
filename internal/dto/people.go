package dto

import "github.com/noah-isme/skynet-epr-api/internal/models"

// PeopleFilter captures the people directory query string.
type PeopleFilter struct {
	Role   string `form:"role"`
	Search string `form:"search"`
}

// PersonListItem is a directory row enriched with role-specific fields.
type PersonListItem struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	Email            string                   `json:"email"`
	Role             models.PersonRole        `json:"role"`
	CourseName       *string                  `json:"course_name,omitempty"`
	EnrollmentStatus *models.EnrollmentStatus `json:"enrollment_status,omitempty"`
	TotalEPRsWritten *int                     `json:"total_eprs_written,omitempty"`
}
