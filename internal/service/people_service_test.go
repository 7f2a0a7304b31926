package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/skynet-epr-api/internal/dto"
	"github.com/noah-isme/skynet-epr-api/internal/models"
	appErrors "github.com/noah-isme/skynet-epr-api/pkg/errors"
)

type mockPersonRepo struct {
	people      map[string]models.Person
	enrollments []models.EnrollmentSummary
	evaluations []models.EPRRecord
	lastFilter  models.PersonFilter
	listCalls   int
	err         error
	onList      func()
}

func newMockPersonRepo() *mockPersonRepo {
	return &mockPersonRepo{
		people: map[string]models.Person{
			"i-1": {ID: "i-1", Name: "Capt. Sarah Mitchell", Email: "sarah.mitchell@skynet.edu", Role: models.RoleInstructor},
			"i-2": {ID: "i-2", Name: "Capt. James Wilson", Email: "james.wilson@skynet.edu", Role: models.RoleInstructor},
			"s-1": {ID: "s-1", Name: "Emma Thompson", Email: "emma.thompson@student.skynet.edu", Role: models.RoleStudent},
			"s-2": {ID: "s-2", Name: "Liam Anderson", Email: "liam.anderson@student.skynet.edu", Role: models.RoleStudent},
			"a-1": {ID: "a-1", Name: "Admin User", Email: "admin@skynet.edu", Role: models.RoleAdmin},
		},
		enrollments: []models.EnrollmentSummary{
			{StudentID: "s-1", CourseName: "Private Pilot License (PPL)", EnrollmentStatus: models.EnrollmentStatusActive},
			{StudentID: "s-1", CourseName: "Instrument Rating (IR)", EnrollmentStatus: models.EnrollmentStatusCompleted},
		},
		evaluations: []models.EPRRecord{
			{ID: "e-1", PersonID: "s-1", EvaluatorID: "i-1"},
			{ID: "e-2", PersonID: "s-2", EvaluatorID: "i-1"},
		},
	}
}

func (m *mockPersonRepo) List(ctx context.Context, filter models.PersonFilter) ([]models.Person, error) {
	m.lastFilter = filter
	m.listCalls++
	if m.onList != nil {
		m.onList()
	}
	if m.err != nil {
		return nil, m.err
	}
	search := strings.ToLower(filter.Search)
	result := make([]models.Person, 0, len(m.people))
	for _, p := range m.people {
		if filter.Role != nil && p.Role != *filter.Role {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.Email), search) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (m *mockPersonRepo) FindByID(ctx context.Context, id string) (*models.Person, error) {
	if p, ok := m.people[id]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockPersonRepo) EnrollmentsForStudents(ctx context.Context, studentIDs []string) ([]models.EnrollmentSummary, error) {
	wanted := make(map[string]bool, len(studentIDs))
	for _, id := range studentIDs {
		wanted[id] = true
	}
	var result []models.EnrollmentSummary
	for _, e := range m.enrollments {
		if wanted[e.StudentID] {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockPersonRepo) EvaluationCountsByEvaluator(ctx context.Context, evaluatorIDs []string) (map[string]int, error) {
	wanted := make(map[string]bool, len(evaluatorIDs))
	for _, id := range evaluatorIDs {
		wanted[id] = true
	}
	counts := make(map[string]int)
	for _, e := range m.evaluations {
		if wanted[e.EvaluatorID] {
			counts[e.EvaluatorID]++
		}
	}
	return counts, nil
}

type memoryCacheRepo struct {
	values      map[string][]byte
	invalidated []string
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{values: make(map[string][]byte)}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			delete(m.values, k)
		}
	}
	return nil
}

func findItem(t *testing.T, items []dto.PersonListItem, id string) dto.PersonListItem {
	t.Helper()
	for _, item := range items {
		if item.ID == id {
			return item
		}
	}
	t.Fatalf("person %s not in result", id)
	return dto.PersonListItem{}
}

func TestPeopleServiceListSearchMatchesStudent(t *testing.T) {
	repo := newMockPersonRepo()
	svc := NewPeopleService(PeopleServiceParams{Repo: repo, Logger: zap.NewNop()})

	items, cached, err := svc.List(context.Background(), dto.PeopleFilter{Search: "liam"})
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, items, 1)
	assert.Equal(t, "Liam Anderson", items[0].Name)
	assert.Equal(t, models.RoleStudent, items[0].Role)
	assert.Equal(t, "liam", repo.lastFilter.Search)
	assert.Nil(t, items[0].TotalEPRsWritten)
}

func TestPeopleServiceListEnrichesByRole(t *testing.T) {
	repo := newMockPersonRepo()
	svc := NewPeopleService(PeopleServiceParams{Repo: repo})

	items, _, err := svc.List(context.Background(), dto.PeopleFilter{})
	require.NoError(t, err)
	require.Len(t, items, 5)

	emma := findItem(t, items, "s-1")
	require.NotNil(t, emma.CourseName)
	assert.Equal(t, "Private Pilot License (PPL)", *emma.CourseName)
	require.NotNil(t, emma.EnrollmentStatus)
	assert.Equal(t, models.EnrollmentStatusActive, *emma.EnrollmentStatus)

	liam := findItem(t, items, "s-2")
	assert.Nil(t, liam.CourseName)
	assert.Nil(t, liam.EnrollmentStatus)

	mitchell := findItem(t, items, "i-1")
	require.NotNil(t, mitchell.TotalEPRsWritten)
	assert.Equal(t, 2, *mitchell.TotalEPRsWritten)

	wilson := findItem(t, items, "i-2")
	require.NotNil(t, wilson.TotalEPRsWritten)
	assert.Equal(t, 0, *wilson.TotalEPRsWritten)

	admin := findItem(t, items, "a-1")
	assert.Nil(t, admin.CourseName)
	assert.Nil(t, admin.TotalEPRsWritten)
}

func TestPeopleServiceListRoleFilter(t *testing.T) {
	repo := newMockPersonRepo()
	svc := NewPeopleService(PeopleServiceParams{Repo: repo})

	items, _, err := svc.List(context.Background(), dto.PeopleFilter{Role: "Instructor"})
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, repo.lastFilter.Role)
	assert.Equal(t, models.RoleInstructor, *repo.lastFilter.Role)
	for _, item := range items {
		assert.Equal(t, models.RoleInstructor, item.Role)
	}
}

func TestPeopleServiceListRejectsUnknownRole(t *testing.T) {
	repo := newMockPersonRepo()
	svc := NewPeopleService(PeopleServiceParams{Repo: repo})

	_, _, err := svc.List(context.Background(), dto.PeopleFilter{Role: "pilot"})
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, 0, repo.listCalls)
}

func TestPeopleServiceListRepositoryFailure(t *testing.T) {
	repo := newMockPersonRepo()
	repo.err = sql.ErrConnDone
	svc := NewPeopleService(PeopleServiceParams{Repo: repo})

	_, _, err := svc.List(context.Background(), dto.PeopleFilter{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
	assert.Equal(t, "failed to list people", appErr.Message)
}

func TestPeopleServiceListUsesCache(t *testing.T) {
	repo := newMockPersonRepo()
	cacheRepo := newMemoryCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	svc := NewPeopleService(PeopleServiceParams{Repo: repo, Cache: cache, CacheTTL: time.Minute})

	first, cached, err := svc.List(context.Background(), dto.PeopleFilter{Role: "student", Search: "Emma"})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Contains(t, cacheRepo.values, "people:list:student:emma")

	second, cached, err := svc.List(context.Background(), dto.PeopleFilter{Role: "student", Search: "emma"})
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls)

	svc.InvalidateDirectory(context.Background())
	assert.Equal(t, []string{"people:list:*"}, cacheRepo.invalidated)
	assert.Empty(t, cacheRepo.values)
}

func TestPeopleServiceGet(t *testing.T) {
	svc := NewPeopleService(PeopleServiceParams{Repo: newMockPersonRepo()})

	person, err := svc.Get(context.Background(), "i-1")
	require.NoError(t, err)
	assert.Equal(t, "Capt. Sarah Mitchell", person.Name)

	_, err = svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
	assert.Equal(t, "Person not found", appErrors.FromError(err).Message)
}

func TestPeopleServiceListSkipsCacheWhenInvalidatedMidRead(t *testing.T) {
	repo := newMockPersonRepo()
	cacheRepo := newMemoryCacheRepo()
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	svc := NewPeopleService(PeopleServiceParams{Repo: repo, Cache: cache, CacheTTL: time.Minute})

	repo.onList = func() {
		// an evaluation lands while the listing is being read
		repo.evaluations = append(repo.evaluations, models.EPRRecord{ID: "e-3", PersonID: "s-2", EvaluatorID: "i-2"})
		svc.InvalidateDirectory(context.Background())
	}
	_, cached, err := svc.List(context.Background(), dto.PeopleFilter{Role: "instructor"})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Empty(t, cacheRepo.values)

	repo.onList = nil
	items, cached, err := svc.List(context.Background(), dto.PeopleFilter{Role: "instructor"})
	require.NoError(t, err)
	assert.False(t, cached)
	wilson := findItem(t, items, "i-2")
	require.NotNil(t, wilson.TotalEPRsWritten)
	assert.Equal(t, 1, *wilson.TotalEPRsWritten)
	assert.Contains(t, cacheRepo.values, "people:list:instructor:")
}
