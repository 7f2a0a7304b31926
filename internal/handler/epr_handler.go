package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/skynet-epr-api/internal/dto"
	"github.com/noah-isme/skynet-epr-api/internal/middleware"
	"github.com/noah-isme/skynet-epr-api/internal/models"
	appErrors "github.com/noah-isme/skynet-epr-api/pkg/errors"
	"github.com/noah-isme/skynet-epr-api/pkg/response"
)

type eprService interface {
	ListByPerson(ctx context.Context, personID string) ([]models.EPRDetail, error)
	Get(ctx context.Context, id string) (*models.EPRDetail, error)
	Create(ctx context.Context, req dto.CreateEPRRequest) (*models.EPRRecord, error)
	Update(ctx context.Context, id string, req dto.UpdateEPRRequest) (*models.EPRRecord, error)
	Assist(req dto.AssistRequest) (*dto.AssistResponse, error)
}

type historyExporter interface {
	PersonHistory(ctx context.Context, personID string, format dto.ExportFormat) (*dto.ExportFile, error)
}

// EPRHandler exposes evaluation endpoints.
type EPRHandler struct {
	eprs    eprService
	exports historyExporter
}

// NewEPRHandler constructs EPRHandler.
func NewEPRHandler(eprs eprService, exports historyExporter) *EPRHandler {
	return &EPRHandler{eprs: eprs, exports: exports}
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
}

// List godoc
// @Summary List evaluations for a person
// @Tags EPR
// @Produce json
// @Param personId query string true "Evaluated person ID"
// @Success 200 {object} response.Envelope{data=[]models.EPRDetail}
// @Failure 400 {object} response.Envelope
// @Router /epr [get]
func (h *EPRHandler) List(c *gin.Context) {
	records, err := h.eprs.ListByPerson(c.Request.Context(), c.Query("personId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCount(c, len(records))
	response.OK(c, records, middleware.ExtractMeta(c))
}

// Get godoc
// @Summary Get evaluation
// @Tags EPR
// @Produce json
// @Param id path string true "EPR ID"
// @Success 200 {object} response.Envelope{data=models.EPRDetail}
// @Failure 404 {object} response.Envelope
// @Router /epr/{id} [get]
func (h *EPRHandler) Get(c *gin.Context) {
	record, err := h.eprs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, record)
}

// Create godoc
// @Summary Create evaluation
// @Tags EPR
// @Accept json
// @Produce json
// @Param payload body dto.CreateEPRRequest true "Evaluation payload"
// @Success 201 {object} response.Envelope{data=models.EPRRecord}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /epr [post]
func (h *EPRHandler) Create(c *gin.Context) {
	var req dto.CreateEPRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	record, err := h.eprs.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update godoc
// @Summary Update evaluation
// @Description Only ratings, remarks and status can change; omitted fields keep their value.
// @Tags EPR
// @Accept json
// @Produce json
// @Param id path string true "EPR ID"
// @Param payload body dto.UpdateEPRRequest true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.EPRRecord}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /epr/{id} [patch]
func (h *EPRHandler) Update(c *gin.Context) {
	var req dto.UpdateEPRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// an unknown record is reported as such whatever the body looks like
		if _, getErr := h.eprs.Get(c.Request.Context(), c.Param("id")); getErr != nil {
			response.Error(c, getErr)
			return
		}
		response.Error(c, invalidPayload(err))
		return
	}
	record, err := h.eprs.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, record)
}

// Assist godoc
// @Summary Suggest remarks from ratings
// @Tags EPR
// @Accept json
// @Produce json
// @Param payload body dto.AssistRequest true "Ratings"
// @Success 200 {object} response.Envelope{data=dto.AssistResponse}
// @Failure 400 {object} response.Envelope
// @Router /epr/assist [post]
func (h *EPRHandler) Assist(c *gin.Context) {
	var req dto.AssistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	suggestion, err := h.eprs.Assist(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, suggestion)
}

// Export godoc
// @Summary Download a person's evaluation history
// @Tags EPR
// @Produce text/csv
// @Produce application/pdf
// @Param personId query string true "Evaluated person ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /epr/export [get]
func (h *EPRHandler) Export(c *gin.Context) {
	format := dto.ExportFormat(c.DefaultQuery("format", string(dto.ExportFormatCSV)))
	file, err := h.exports.PersonHistory(c.Request.Context(), c.Query("personId"), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
