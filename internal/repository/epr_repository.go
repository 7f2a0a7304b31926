package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/skynet-epr-api/internal/models"
)

const eprColumns = `id, person_id, evaluator_id, role_type, period_start, period_end, overall_rating, technical_skills_rating, non_technical_skills_rating, remarks, status, created_at, updated_at`

const eprDetailSelect = `SELECT r.id, r.person_id, r.evaluator_id, r.role_type, r.period_start, r.period_end, r.overall_rating, r.technical_skills_rating, r.non_technical_skills_rating, r.remarks, r.status, r.created_at, r.updated_at, p.name AS person_name, e.name AS evaluator_name`

// EPRRepository provides database access for evaluation records.
type EPRRepository struct {
	db *sqlx.DB
	queryTimer
}

// NewEPRRepository creates a new instance of EPRRepository. metrics may be nil.
func NewEPRRepository(db *sqlx.DB, metrics QueryObserver) *EPRRepository {
	return &EPRRepository{db: db, queryTimer: queryTimer{observer: metrics}}
}

// ListByPerson returns the evaluations of a person, most recent period first.
func (r *EPRRepository) ListByPerson(ctx context.Context, personID string) ([]models.EPRDetail, error) {
	records := make([]models.EPRDetail, 0)
	if !validID(personID) {
		return records, nil
	}
	defer r.track("epr.list_by_person")()

	const query = eprDetailSelect + `
FROM epr_records r
JOIN users p ON p.id = r.person_id
JOIN users e ON e.id = r.evaluator_id
WHERE r.person_id = $1
ORDER BY r.period_start DESC`
	if err := r.db.SelectContext(ctx, &records, query, personID); err != nil {
		return nil, fmt.Errorf("list evaluations by person: %w", err)
	}
	return records, nil
}

// FindByID returns one evaluation with names and the evaluated person's role.
func (r *EPRRepository) FindByID(ctx context.Context, id string) (*models.EPRDetail, error) {
	if !validID(id) {
		return nil, sql.ErrNoRows
	}
	defer r.track("epr.find")()

	const query = eprDetailSelect + `, p.role AS person_role
FROM epr_records r
JOIN users p ON p.id = r.person_id
JOIN users e ON e.id = r.evaluator_id
WHERE r.id = $1
LIMIT 1`
	var record models.EPRDetail
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find evaluation by id: %w", err)
	}
	return &record, nil
}

// Create inserts a new evaluation and replaces record with the stored row, so
// timestamps carry the database's precision. ID and timestamps are filled in
// when empty.
func (r *EPRRepository) Create(ctx context.Context, record *models.EPRRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = record.CreatedAt
	defer r.track("epr.create")()

	const named = `INSERT INTO epr_records (` + eprColumns + `) VALUES (:id, :person_id, :evaluator_id, :role_type, :period_start, :period_end, :overall_rating, :technical_skills_rating, :non_technical_skills_rating, :remarks, :status, :created_at, :updated_at) RETURNING ` + eprColumns
	query, args, err := r.db.BindNamed(named, record)
	if err != nil {
		return fmt.Errorf("bind evaluation insert: %w", err)
	}

	var stored models.EPRRecord
	if err := r.db.GetContext(ctx, &stored, query, args...); err != nil {
		return fmt.Errorf("create evaluation: %w", err)
	}
	*record = stored
	return nil
}

// Update applies the non-nil patch fields and refreshes updated_at in a single
// statement. sql.ErrNoRows is returned when no record matches id.
func (r *EPRRepository) Update(ctx context.Context, id string, patch models.EPRPatch, updatedAt time.Time) (*models.EPRRecord, error) {
	if !validID(id) {
		return nil, sql.ErrNoRows
	}

	sets := make([]string, 0, 6)
	args := []interface{}{id}
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.OverallRating != nil {
		set("overall_rating", *patch.OverallRating)
	}
	if patch.TechnicalSkillsRating != nil {
		set("technical_skills_rating", *patch.TechnicalSkillsRating)
	}
	if patch.NonTechnicalSkillsRating != nil {
		set("non_technical_skills_rating", *patch.NonTechnicalSkillsRating)
	}
	if patch.Remarks != nil {
		set("remarks", *patch.Remarks)
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	set("updated_at", updatedAt)

	defer r.track("epr.update")()
	query := fmt.Sprintf(`UPDATE epr_records SET %s WHERE id = $1 RETURNING %s`, strings.Join(sets, ", "), eprColumns)

	var record models.EPRRecord
	if err := r.db.GetContext(ctx, &record, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update evaluation: %w", err)
	}
	return &record, nil
}
