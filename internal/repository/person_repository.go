package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/skynet-epr-api/internal/models"
)

const personColumns = `id, name, email, role, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PersonRepository provides database access for the people directory.
type PersonRepository struct {
	db *sqlx.DB
	queryTimer
}

// NewPersonRepository creates a new instance of PersonRepository. metrics may be nil.
func NewPersonRepository(db *sqlx.DB, metrics QueryObserver) *PersonRepository {
	return &PersonRepository{db: db, queryTimer: queryTimer{observer: metrics}}
}

// List returns users matching the filter ordered by name.
func (r *PersonRepository) List(ctx context.Context, filter models.PersonFilter) ([]models.Person, error) {
	defer r.track("people.list")()

	query := `SELECT ` + personColumns + ` FROM users WHERE 1=1`
	var args []interface{}

	if filter.Role != nil {
		args = append(args, string(*filter.Role))
		query += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(strings.ToLower(filter.Search))+"%")
		query += fmt.Sprintf(" AND (LOWER(name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY name ASC, id ASC"

	people := make([]models.Person, 0)
	if err := r.db.SelectContext(ctx, &people, query, args...); err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return people, nil
}

// FindByID returns a user by identifier.
func (r *PersonRepository) FindByID(ctx context.Context, id string) (*models.Person, error) {
	if !validID(id) {
		return nil, sql.ErrNoRows
	}
	defer r.track("people.find")()

	const query = `SELECT ` + personColumns + ` FROM users WHERE id = $1 LIMIT 1`
	var person models.Person
	if err := r.db.GetContext(ctx, &person, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find person by id: %w", err)
	}
	return &person, nil
}

// EnrollmentsForStudents returns course name and status for each enrollment of
// the given students, in whatever order the store yields them.
func (r *PersonRepository) EnrollmentsForStudents(ctx context.Context, studentIDs []string) ([]models.EnrollmentSummary, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	defer r.track("people.enrollments")()

	const query = `SELECT e.student_id, c.name AS course_name, e.status AS enrollment_status
FROM enrollments e
JOIN courses c ON c.id = e.course_id
WHERE e.student_id = ANY($1)`
	var rows []models.EnrollmentSummary
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(studentIDs)); err != nil {
		return nil, fmt.Errorf("list enrollments for students: %w", err)
	}
	return rows, nil
}

// EvaluationCountsByEvaluator counts epr_records authored by each evaluator.
// Evaluators without records are absent from the map.
func (r *PersonRepository) EvaluationCountsByEvaluator(ctx context.Context, evaluatorIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(evaluatorIDs))
	if len(evaluatorIDs) == 0 {
		return counts, nil
	}
	defer r.track("people.epr_counts")()

	const query = `SELECT evaluator_id, COUNT(*) AS total FROM epr_records WHERE evaluator_id = ANY($1) GROUP BY evaluator_id`
	var rows []struct {
		EvaluatorID string `db:"evaluator_id"`
		Total       int    `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(evaluatorIDs)); err != nil {
		return nil, fmt.Errorf("count evaluations by evaluator: %w", err)
	}
	for _, row := range rows {
		counts[row.EvaluatorID] = row.Total
	}
	return counts, nil
}
