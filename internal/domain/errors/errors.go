// Package errors maps store and request failures onto API error responses.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mongotesting/contacts-service/internal/core/docdb"
)

// Error codes for domain errors.
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeTimeout            = "TIMEOUT"
)

// DomainError carries the code and HTTP status an API response is built from.
type DomainError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

func newError(code string, status int, message, details string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details, HTTPStatus: status, Err: err}
}

// NewNotFoundError reports a missing resource.
func NewNotFoundError(resource, identifier string) *DomainError {
	return newError(ErrCodeNotFound, http.StatusNotFound, resource+" not found", identifier, nil)
}

// NewValidationError reports a request that failed validation.
func NewValidationError(message, details string) *DomainError {
	return newError(ErrCodeValidation, http.StatusBadRequest, message, details, nil)
}

// NewBadRequestError reports a request that could not be read.
func NewBadRequestError(message, details string) *DomainError {
	return newError(ErrCodeBadRequest, http.StatusBadRequest, message, details, nil)
}

// NewInternalError wraps err; its text becomes the details.
func NewInternalError(message string, err error) *DomainError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return newError(ErrCodeInternal, http.StatusInternalServerError, message, details, err)
}

// NewServiceUnavailableError reports a dependency that cannot be reached.
func NewServiceUnavailableError(service string, err error) *DomainError {
	return newError(ErrCodeServiceUnavailable, http.StatusServiceUnavailable, service+" is unavailable", "", err)
}

// NewTimeoutError reports an operation that ran past its deadline.
func NewTimeoutError(operation string, err error) *DomainError {
	return newError(ErrCodeTimeout, http.StatusGatewayTimeout, operation+" timed out", "", err)
}

// FromStoreError converts an error returned by the document store into a
// domain error. Deadline errors become timeouts and malformed batches become
// bad requests; anything else is internal.
func FromStoreError(operation string, err error) *DomainError {
	if domainErr, ok := GetDomainError(err); ok {
		return domainErr
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewTimeoutError(operation, err)
	case errors.Is(err, docdb.ErrEmptyBatch):
		return newError(ErrCodeBadRequest, http.StatusBadRequest, "failed to "+operation, err.Error(), err)
	}
	return NewInternalError("failed to "+operation, err)
}

// GetDomainError extracts the domain error from an error chain.
func GetDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}
