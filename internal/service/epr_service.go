package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/skynet-epr-api/internal/dto"
	"github.com/noah-isme/skynet-epr-api/internal/models"
	appErrors "github.com/noah-isme/skynet-epr-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type eprRepository interface {
	ListByPerson(ctx context.Context, personID string) ([]models.EPRDetail, error)
	FindByID(ctx context.Context, id string) (*models.EPRDetail, error)
	Create(ctx context.Context, record *models.EPRRecord) error
	Update(ctx context.Context, id string, patch models.EPRPatch, updatedAt time.Time) (*models.EPRRecord, error)
}

type personLookup interface {
	FindByID(ctx context.Context, id string) (*models.Person, error)
}

type directoryInvalidator interface {
	InvalidateDirectory(ctx context.Context)
}

// EPRServiceParams groups constructor dependencies.
type EPRServiceParams struct {
	Records   eprRepository
	People    personLookup
	Directory directoryInvalidator
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
}

// EPRService reads and writes evaluation records and suggests remarks.
type EPRService struct {
	records   eprRepository
	people    personLookup
	directory directoryInvalidator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEPRService constructs an EPRService.
func NewEPRService(params EPRServiceParams) *EPRService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EPRService{
		records:   params.Records,
		people:    params.People,
		directory: params.Directory,
		metrics:   params.Metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// ListByPerson returns a person's evaluations, most recent period first.
func (s *EPRService) ListByPerson(ctx context.Context, personID string) ([]models.EPRDetail, error) {
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return nil, appErrors.Missing("personId")
	}
	records, err := s.records.ListByPerson(ctx, personID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list evaluations")
	}
	return records, nil
}

// Get returns a single evaluation.
func (s *EPRService) Get(ctx context.Context, id string) (*models.EPRDetail, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("EPR")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluation")
	}
	return record, nil
}

// Create validates and stores a new evaluation. Checks run in a fixed order and
// the first failure is returned: ratings, period, payload shape, person, evaluator.
func (s *EPRService) Create(ctx context.Context, req dto.CreateEPRRequest) (*models.EPRRecord, error) {
	ratings, err := validateRatings(req.OverallRating, req.TechnicalSkillsRating, req.NonTechnicalSkillsRating)
	if err != nil {
		return nil, err
	}

	mistyped := req.MistypedFields()
	start, err := parseDate("periodStart", req.PeriodStart, mistyped)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("periodEnd", req.PeriodEnd, mistyped)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, appErrors.Clone(appErrors.ErrInvalidPeriod, "")
	}

	if len(mistyped) > 0 {
		return nil, mistypedError(mistyped[0])
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	if err := s.ensurePerson(ctx, req.PersonID, "Person"); err != nil {
		return nil, err
	}
	if err := s.ensurePerson(ctx, req.EvaluatorID, "Evaluator"); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.EPRStatusDraft
	}
	record := &models.EPRRecord{
		PersonID:                 req.PersonID,
		EvaluatorID:              req.EvaluatorID,
		RoleType:                 req.RoleType,
		PeriodStart:              start,
		PeriodEnd:                end,
		OverallRating:            ratings.Overall,
		TechnicalSkillsRating:    ratings.Technical,
		NonTechnicalSkillsRating: ratings.NonTechnical,
		Remarks:                  req.Remarks,
		Status:                   status,
		CreatedAt:                s.now().UTC(),
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create evaluation")
	}

	if s.directory != nil {
		s.directory.InvalidateDirectory(ctx)
	}
	s.metrics.RecordEPRWrite("create", record.Status)
	s.logger.Info("evaluation created",
		zap.String("epr_id", record.ID),
		zap.String("person_id", record.PersonID),
		zap.String("evaluator_id", record.EvaluatorID),
		zap.String("status", string(record.Status)),
	)
	return record, nil
}

// Update applies a partial update to ratings, remarks and status.
func (s *EPRService) Update(ctx context.Context, id string, req dto.UpdateEPRRequest) (*models.EPRRecord, error) {
	if _, err := s.records.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("EPR")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load evaluation")
	}

	var patch models.EPRPatch
	for _, f := range []struct {
		field, label string
		in           *dto.RatingInput
		out          **int
	}{
		{"overallRating", "Overall rating", req.OverallRating, &patch.OverallRating},
		{"technicalSkillsRating", "Technical skills rating", req.TechnicalSkillsRating, &patch.TechnicalSkillsRating},
		{"nonTechnicalSkillsRating", "Non-technical skills rating", req.NonTechnicalSkillsRating, &patch.NonTechnicalSkillsRating},
	} {
		if f.in == nil {
			continue
		}
		v, ok := f.in.Int()
		if !ok {
			return nil, appErrors.InvalidRating(f.field, f.label)
		}
		*f.out = &v
	}

	if mistyped := req.MistypedFields(); len(mistyped) > 0 {
		return nil, mistypedError(mistyped[0])
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}
	patch.Remarks = req.Remarks
	patch.Status = req.Status

	record, err := s.records.Update(ctx, id, patch, s.now().UTC())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("EPR")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update evaluation")
	}

	s.metrics.RecordEPRWrite("update", record.Status)
	s.logger.Info("evaluation updated", zap.String("epr_id", record.ID), zap.String("status", string(record.Status)))
	return record, nil
}

// Assist range-checks the ratings and returns a suggested remarks paragraph.
func (s *EPRService) Assist(req dto.AssistRequest) (*dto.AssistResponse, error) {
	ratings, err := validateRatings(req.OverallRating, req.TechnicalSkillsRating, req.NonTechnicalSkillsRating)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordRemarkSuggestion()
	return &dto.AssistResponse{SuggestedRemarks: SuggestRemarks(ratings)}, nil
}

func (s *EPRService) ensurePerson(ctx context.Context, id, resource string) error {
	if _, err := s.people.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.NotFound(resource)
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load "+strings.ToLower(resource))
	}
	return nil
}

func validateRatings(overall, technical, nonTechnical *dto.RatingInput) (Ratings, error) {
	var r Ratings
	var ok bool
	if r.Overall, ok = overall.Int(); !ok {
		return r, appErrors.InvalidRating("overallRating", "Overall rating")
	}
	if r.Technical, ok = technical.Int(); !ok {
		return r, appErrors.InvalidRating("technicalSkillsRating", "Technical skills rating")
	}
	if r.NonTechnical, ok = nonTechnical.Int(); !ok {
		return r, appErrors.InvalidRating("nonTechnicalSkillsRating", "Non-technical skills rating")
	}
	return r, nil
}

func parseDate(field, raw string, mistyped []string) (time.Time, error) {
	for _, f := range mistyped {
		if f == field {
			return time.Time{}, invalidDate(field)
		}
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, appErrors.Missing(field)
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, invalidDate(field)
}

func invalidDate(field string) error {
	return appErrors.WithDetail(appErrors.Clone(appErrors.ErrValidation, field+" must be a date in YYYY-MM-DD format"), "field", field)
}

func mistypedError(field string) error {
	return appErrors.WithDetail(appErrors.Clone(appErrors.ErrValidation, field+" must be a string"), "field", field)
}

// validationError maps validator failures onto VALIDATION_MISSING for absent
// required fields and VALIDATION_ERROR for everything else.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		field := jsonFieldName(first.Field())
		if first.Tag() == "required" {
			return appErrors.Missing(field)
		}
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, field+" is invalid")
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid evaluation payload")
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	switch field {
	case "PersonID":
		return "personId"
	case "EvaluatorID":
		return "evaluatorId"
	}
	return strings.ToLower(field[:1]) + field[1:]
}
