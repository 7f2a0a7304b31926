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

type peopleService interface {
	List(ctx context.Context, filter dto.PeopleFilter) ([]dto.PersonListItem, bool, error)
	Get(ctx context.Context, id string) (*models.Person, error)
}

// PeopleHandler exposes the people directory.
type PeopleHandler struct {
	people peopleService
}

// NewPeopleHandler constructs PeopleHandler.
func NewPeopleHandler(people peopleService) *PeopleHandler {
	return &PeopleHandler{people: people}
}

// List godoc
// @Summary List people
// @Description Students carry their course and enrollment status, instructors the number of evaluations they wrote.
// @Tags People
// @Produce json
// @Param role query string false "student, instructor or admin"
// @Param search query string false "Case-insensitive match on name or email"
// @Success 200 {object} response.Envelope{data=[]dto.PersonListItem}
// @Failure 400 {object} response.Envelope
// @Router /people [get]
func (h *PeopleHandler) List(c *gin.Context) {
	var filter dto.PeopleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query"))
		return
	}
	items, cacheHit, err := h.people.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetCount(c, len(items))
	response.OK(c, items, middleware.ExtractMeta(c))
}

// Get godoc
// @Summary Get person
// @Tags People
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {object} response.Envelope{data=models.Person}
// @Failure 404 {object} response.Envelope
// @Router /people/{id} [get]
func (h *PeopleHandler) Get(c *gin.Context) {
	person, err := h.people.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, person)
}
