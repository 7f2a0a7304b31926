package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorWrapsUnknown(t *testing.T) {
	raw := fmt.Errorf("connection refused")
	appErr := FromError(raw)
	require.NotNil(t, appErr)
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, ErrInternal.Message, appErr.Message)
	assert.ErrorIs(t, appErr, raw)
}

func TestFromErrorKeepsTyped(t *testing.T) {
	wrapped := fmt.Errorf("create epr: %w", InvalidRating("overallRating", "Overall rating"))
	appErr := FromError(wrapped)
	assert.Equal(t, ErrInvalidRating.Code, appErr.Code)
	assert.Equal(t, "overallRating", appErr.Details["field"])
}

func TestClonesMatchSentinel(t *testing.T) {
	err := NotFound("Evaluator")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidPeriod))
	assert.Equal(t, "Evaluator not found", err.Message)
	assert.Equal(t, "Evaluator", err.Details["resource"])
	assert.Nil(t, ErrNotFound.Details)
}

func TestMissing(t *testing.T) {
	err := Missing("personId")
	assert.Equal(t, "VALIDATION_MISSING", err.Code)
	assert.Equal(t, "personId is required", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)
}
