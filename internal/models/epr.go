package models

import "time"

// EPRRoleType is the evaluated person's role captured when the record was written.
type EPRRoleType string

const (
	EPRRoleStudent    EPRRoleType = "student"
	EPRRoleInstructor EPRRoleType = "instructor"
)

// EPRStatus tracks the workflow state of an evaluation.
type EPRStatus string

const (
	EPRStatusDraft     EPRStatus = "draft"
	EPRStatusSubmitted EPRStatus = "submitted"
	EPRStatusArchived  EPRStatus = "archived"
)

// Rating bounds shared by every rating column.
const (
	MinRating = 1
	MaxRating = 5
)

// EPRRecord is one periodic performance evaluation (epr_records row).
type EPRRecord struct {
	ID                       string      `db:"id" json:"id"`
	PersonID                 string      `db:"person_id" json:"person_id"`
	EvaluatorID              string      `db:"evaluator_id" json:"evaluator_id"`
	RoleType                 EPRRoleType `db:"role_type" json:"role_type"`
	PeriodStart              time.Time   `db:"period_start" json:"period_start"`
	PeriodEnd                time.Time   `db:"period_end" json:"period_end"`
	OverallRating            int         `db:"overall_rating" json:"overall_rating"`
	TechnicalSkillsRating    int         `db:"technical_skills_rating" json:"technical_skills_rating"`
	NonTechnicalSkillsRating int         `db:"non_technical_skills_rating" json:"non_technical_skills_rating"`
	Remarks                  string      `db:"remarks" json:"remarks"`
	Status                   EPRStatus   `db:"status" json:"status"`
	CreatedAt                time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt                time.Time   `db:"updated_at" json:"updated_at"`
}

// EPRDetail enriches EPRRecord with display names from users.
type EPRDetail struct {
	EPRRecord
	PersonName    string      `db:"person_name" json:"person_name"`
	PersonRole    *PersonRole `db:"person_role" json:"person_role,omitempty"`
	EvaluatorName string      `db:"evaluator_name" json:"evaluator_name"`
}

// EPRPatch lists the mutable columns of an evaluation; nil means unchanged.
type EPRPatch struct {
	OverallRating            *int
	TechnicalSkillsRating    *int
	NonTechnicalSkillsRating *int
	Remarks                  *string
	Status                   *EPRStatus
}
