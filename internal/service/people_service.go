package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/skynet-epr-api/internal/dto"
	"github.com/noah-isme/skynet-epr-api/internal/models"
	appErrors "github.com/noah-isme/skynet-epr-api/pkg/errors"
)

// peopleCachePattern matches every cached people listing.
const peopleCachePattern = "people:list:*"

type personRepository interface {
	List(ctx context.Context, filter models.PersonFilter) ([]models.Person, error)
	FindByID(ctx context.Context, id string) (*models.Person, error)
	EnrollmentsForStudents(ctx context.Context, studentIDs []string) ([]models.EnrollmentSummary, error)
	EvaluationCountsByEvaluator(ctx context.Context, evaluatorIDs []string) (map[string]int, error)
}

// PeopleServiceParams groups constructor dependencies.
type PeopleServiceParams struct {
	Repo     personRepository
	Cache    *CacheService
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// PeopleService builds the people directory and looks up individuals.
type PeopleService struct {
	repo     personRepository
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger

	// generation advances on every invalidation; a listing computed under an
	// older generation must not stay in the cache.
	generation atomic.Uint64
}

// NewPeopleService constructs a PeopleService.
func NewPeopleService(params PeopleServiceParams) *PeopleService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PeopleService{
		repo:     params.Repo,
		cache:    params.Cache,
		cacheTTL: params.CacheTTL,
		logger:   logger,
	}
}

// List returns people narrowed by role and search text, each enriched with
// role-specific fields. The boolean reports whether the result came from cache.
func (s *PeopleService) List(ctx context.Context, filter dto.PeopleFilter) ([]dto.PersonListItem, bool, error) {
	var query models.PersonFilter
	if role := strings.TrimSpace(filter.Role); role != "" {
		r := models.PersonRole(strings.ToLower(role))
		if !r.Valid() {
			return nil, false, appErrors.WithDetail(appErrors.Clone(appErrors.ErrValidation, "role must be one of student, instructor, admin"), "field", "role")
		}
		query.Role = &r
	}
	query.Search = filter.Search

	key := peopleCacheKey(query)
	var cached []dto.PersonListItem
	if s.cache.Get(ctx, key, &cached) {
		return cached, true, nil
	}

	gen := s.generation.Load()
	people, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list people")
	}

	items, err := s.enrich(ctx, people)
	if err != nil {
		return nil, false, err
	}

	if s.generation.Load() == gen {
		s.cache.Set(ctx, key, items, s.cacheTTL)
		if s.generation.Load() != gen {
			s.cache.Invalidate(ctx, peopleCachePattern)
		}
	}
	return items, false, nil
}

func (s *PeopleService) enrich(ctx context.Context, people []models.Person) ([]dto.PersonListItem, error) {
	var studentIDs, instructorIDs []string
	for _, p := range people {
		switch p.Role {
		case models.RoleStudent:
			studentIDs = append(studentIDs, p.ID)
		case models.RoleInstructor:
			instructorIDs = append(instructorIDs, p.ID)
		}
	}

	enrollments, err := s.repo.EnrollmentsForStudents(ctx, studentIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollments")
	}
	// First row per student wins; the store does not order enrollments, so a
	// student with several enrollments may surface any of them.
	byStudent := make(map[string]models.EnrollmentSummary, len(enrollments))
	for _, e := range enrollments {
		if _, seen := byStudent[e.StudentID]; !seen {
			byStudent[e.StudentID] = e
		}
	}

	counts, err := s.repo.EvaluationCountsByEvaluator(ctx, instructorIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count evaluations")
	}

	items := make([]dto.PersonListItem, 0, len(people))
	for _, p := range people {
		item := dto.PersonListItem{ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role}
		switch p.Role {
		case models.RoleStudent:
			if e, ok := byStudent[p.ID]; ok {
				course, status := e.CourseName, e.EnrollmentStatus
				item.CourseName = &course
				item.EnrollmentStatus = &status
			}
		case models.RoleInstructor:
			total := counts[p.ID]
			item.TotalEPRsWritten = &total
		}
		items = append(items, item)
	}
	return items, nil
}

// Get returns a person by ID.
func (s *PeopleService) Get(ctx context.Context, id string) (*models.Person, error) {
	person, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("Person")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load person")
	}
	return person, nil
}

// InvalidateDirectory drops cached listings, e.g. after evaluation counts change.
// Listings already in flight in this process are kept out of the cache; other
// replicas can still write back a stale listing until its TTL expires.
func (s *PeopleService) InvalidateDirectory(ctx context.Context) {
	s.generation.Add(1)
	s.cache.Invalidate(ctx, peopleCachePattern)
}

func peopleCacheKey(filter models.PersonFilter) string {
	role := "all"
	if filter.Role != nil {
		role = string(*filter.Role)
	}
	return fmt.Sprintf("people:list:%s:%s", role, strings.ToLower(filter.Search))
}
