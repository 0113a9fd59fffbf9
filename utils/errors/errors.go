// Package errors defines the JSON error body returned by every endpoint.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// APIError is the error shape clients see.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

var (
	ErrInvalidInput    = NewAPIError("INVALID_INPUT", "Invalid request data", http.StatusBadRequest)
	ErrUnauthorized    = NewAPIError("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	ErrNotFound        = NewAPIError("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrTooManyRequests = NewAPIError("TOO_MANY_REQUESTS", "Too many submissions, please try again later", http.StatusTooManyRequests)
	ErrInternal        = NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
)

// NotFound builds a 404 naming the missing resource.
func NotFound(resource, slug string) *APIError {
	return NewAPIError("NOT_FOUND", resource+" not found", http.StatusNotFound, slug)
}

// As finds an APIError anywhere in err's chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Wrap returns the APIError in err's chain if there is one, otherwise a new
// APIError carrying err's text as details.
func Wrap(err error, code, message string, status int) *APIError {
	if apiErr, ok := As(err); ok {
		return apiErr
	}
	return NewAPIError(code, message, status, err.Error())
}
