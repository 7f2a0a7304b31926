package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/skynet-epr-api/internal/dto"
	"github.com/noah-isme/skynet-epr-api/internal/models"
	appErrors "github.com/noah-isme/skynet-epr-api/pkg/errors"
	"github.com/noah-isme/skynet-epr-api/pkg/export"
)

type failingRenderer struct{}

func (failingRenderer) Render(export.Dataset) ([]byte, error) {
	return nil, errors.New("renderer exploded")
}

func newExportFixture(t *testing.T) (*ExportService, *mockEPRRepo) {
	t.Helper()
	people := newMockPersonRepo()
	records := newMockEPRRepo(people.people)
	records.records["epr-1"] = models.EPRRecord{
		ID: "epr-1", PersonID: "s-1", EvaluatorID: "i-1", RoleType: models.EPRRoleStudent,
		PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), PeriodEnd: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		OverallRating: 4, TechnicalSkillsRating: 5, NonTechnicalSkillsRating: 3,
		Remarks: "Good progress", Status: models.EPRStatusSubmitted,
	}
	records.records["epr-2"] = models.EPRRecord{
		ID: "epr-2", PersonID: "s-1", EvaluatorID: "i-1", RoleType: models.EPRRoleStudent,
		PeriodStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), PeriodEnd: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		OverallRating: 3, TechnicalSkillsRating: 3, NonTechnicalSkillsRating: 3, Status: models.EPRStatusDraft,
	}
	svc := NewExportService(ExportServiceParams{Records: records, People: people})
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC) }
	return svc, records
}

func TestExportServicePersonHistoryCSV(t *testing.T) {
	svc, _ := newExportFixture(t)

	file, err := svc.PersonHistory(context.Background(), "s-1", "")
	require.NoError(t, err)
	assert.Equal(t, "epr-history-emma-thompson-20240305.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	rows, err := csv.NewReader(bytes.NewReader(file.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Period Start", rows[0][0])
	assert.Equal(t, "2024-02-01", rows[1][0])
	assert.Equal(t, "Capt. Sarah Mitchell", rows[1][3])
	assert.Equal(t, "Good progress", rows[2][8])
}

func TestExportServicePersonHistoryPDF(t *testing.T) {
	svc, _ := newExportFixture(t)

	file, err := svc.PersonHistory(context.Background(), "s-1", dto.ExportFormat("PDF"))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "epr-history-emma-thompson-20240305.pdf", file.Filename)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF-")))
}

func TestExportServicePersonHistoryErrors(t *testing.T) {
	svc, _ := newExportFixture(t)

	_, err := svc.PersonHistory(context.Background(), "", dto.ExportFormatCSV)
	assertAppError(t, err, appErrors.ErrValidationMissing, "personId is required")

	_, err = svc.PersonHistory(context.Background(), "s-1", "xlsx")
	assertAppError(t, err, appErrors.ErrValidation, "format must be csv or pdf")

	_, err = svc.PersonHistory(context.Background(), "ghost", dto.ExportFormatCSV)
	assertAppError(t, err, appErrors.ErrNotFound, "Person not found")

	svc.csv = failingRenderer{}
	_, err = svc.PersonHistory(context.Background(), "s-1", dto.ExportFormatCSV)
	assertAppError(t, err, appErrors.ErrInternal, "failed to render export")
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "capt-sarah-mitchell", slug("Capt. Sarah Mitchell"))
	assert.Equal(t, "person", slug("  "))
}
