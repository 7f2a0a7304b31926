package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/skynet-epr-api/internal/dto"
	"github.com/noah-isme/skynet-epr-api/internal/models"
	appErrors "github.com/noah-isme/skynet-epr-api/pkg/errors"
	"github.com/noah-isme/skynet-epr-api/pkg/export"
)

type evaluationHistory interface {
	ListByPerson(ctx context.Context, personID string) ([]models.EPRDetail, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportServiceParams groups constructor dependencies.
type ExportServiceParams struct {
	Records evaluationHistory
	People  personLookup
	CSV     csvRenderer
	PDF     pdfRenderer
	Logger  *zap.Logger
}

// ExportService renders a person's evaluation history as a downloadable file.
type ExportService struct {
	records evaluationHistory
	people  personLookup
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
	now     func() time.Time
}

var historyColumns = []export.Column{
	{Key: "period_start", Title: "Period Start", Width: 24},
	{Key: "period_end", Title: "Period End", Width: 24},
	{Key: "role_type", Title: "Role", Width: 20},
	{Key: "evaluator", Title: "Evaluator", Width: 40},
	{Key: "overall", Title: "Overall", Width: 16},
	{Key: "technical", Title: "Technical", Width: 18},
	{Key: "non_technical", Title: "Non-Technical", Width: 24},
	{Key: "status", Title: "Status", Width: 20},
	{Key: "remarks", Title: "Remarks", MaxChars: 48},
}

// NewExportService constructs an ExportService.
func NewExportService(params ExportServiceParams) *ExportService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	var csv csvRenderer = export.NewCSVExporter()
	if params.CSV != nil {
		csv = params.CSV
	}
	var pdf pdfRenderer = export.NewPDFExporter()
	if params.PDF != nil {
		pdf = params.PDF
	}
	return &ExportService{
		records: params.Records,
		people:  params.People,
		csv:     csv,
		pdf:     pdf,
		logger:  logger,
		now:     time.Now,
	}
}

// PersonHistory renders every evaluation of personID, newest period first.
func (s *ExportService) PersonHistory(ctx context.Context, personID string, format dto.ExportFormat) (*dto.ExportFile, error) {
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return nil, appErrors.Missing("personId")
	}
	if format == "" {
		format = dto.ExportFormatCSV
	}
	format = dto.ExportFormat(strings.ToLower(string(format)))
	if format != dto.ExportFormatCSV && format != dto.ExportFormatPDF {
		return nil, appErrors.WithDetail(appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"), "field", "format")
	}

	person, err := s.people.FindByID(ctx, personID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFound("Person")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load person")
	}

	records, err := s.records.ListByPerson(ctx, personID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list evaluations")
	}

	dataset := export.Dataset{
		Title:   fmt.Sprintf("Evaluation history: %s (%s)", person.Name, person.Role),
		Columns: historyColumns,
		Rows:    make([]map[string]string, 0, len(records)),
	}
	for _, r := range records {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"period_start":  r.PeriodStart.Format(dateLayout),
			"period_end":    r.PeriodEnd.Format(dateLayout),
			"role_type":     string(r.RoleType),
			"evaluator":     r.EvaluatorName,
			"overall":       strconv.Itoa(r.OverallRating),
			"technical":     strconv.Itoa(r.TechnicalSkillsRating),
			"non_technical": strconv.Itoa(r.NonTechnicalSkillsRating),
			"status":        string(r.Status),
			"remarks":       r.Remarks,
		})
	}

	file := &dto.ExportFile{
		Filename: fmt.Sprintf("epr-history-%s-%s.%s", slug(person.Name), s.now().UTC().Format("20060102"), format),
	}
	switch format {
	case dto.ExportFormatPDF:
		file.ContentType = "application/pdf"
		file.Body, err = s.pdf.Render(dataset)
	default:
		file.ContentType = "text/csv; charset=utf-8"
		file.Body, err = s.csv.Render(dataset)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	s.logger.Info("evaluation history exported",
		zap.String("person_id", personID),
		zap.String("format", string(format)),
		zap.Int("records", len(records)),
	)
	return file, nil
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "person"
	}
	return out
}
