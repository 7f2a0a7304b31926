package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches errors sharing the same code, so clones compare equal to their sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound          = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation        = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrValidationMissing = New("VALIDATION_MISSING", http.StatusBadRequest, "required field missing")
	ErrInvalidRating     = New("INVALID_RATING", http.StatusBadRequest, "rating must be an integer between 1 and 5")
	ErrInvalidPeriod     = New("INVALID_PERIOD", http.StatusBadRequest, "period end date must be after or equal to start date")
	ErrInternal          = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss         = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithDetail returns a copy of err carrying an extra detail entry.
func WithDetail(err *Error, key string, value interface{}) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Details = make(map[string]interface{}, len(err.Details)+1)
	for k, v := range err.Details {
		clone.Details[k] = v
	}
	clone.Details[key] = value
	return &clone
}

// NotFound builds a NOT_FOUND error naming the missing resource, e.g. "Person not found".
func NotFound(resource string) *Error {
	return WithDetail(Clone(ErrNotFound, resource+" not found"), "resource", resource)
}

// InvalidRating builds an INVALID_RATING error naming the offending field.
func InvalidRating(field, label string) *Error {
	return WithDetail(Clone(ErrInvalidRating, label+" must be an integer between 1 and 5"), "field", field)
}

// Missing builds a VALIDATION_MISSING error naming the absent field.
func Missing(field string) *Error {
	return WithDetail(Clone(ErrValidationMissing, field+" is required"), "field", field)
}
