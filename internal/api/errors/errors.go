package errors

import (
	"fmt"
	"net/http"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindBadRequest       ErrorKind = "bad_request"
	KindUnsupportedMedia ErrorKind = "unsupported_media"
	KindNotFound         ErrorKind = "not_found"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindConflict         ErrorKind = "conflict"
	KindInternal         ErrorKind = "internal"
	KindUnavailable      ErrorKind = "service_unavailable"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewUnsupportedMediaError creates an error for uploads with a file type
// outside the allow-list
func NewUnsupportedMediaError(ext string, allowed []string) *APIError {
	return &APIError{
		Kind:    KindUnsupportedMedia,
		Message: fmt.Sprintf("unsupported file type %q", ext),
		Details: map[string]string{"allowed": fmt.Sprintf("%v", allowed)},
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewUnavailableError creates a service unavailable error
func NewUnavailableError(message string) *APIError {
	return &APIError{
		Kind:    KindUnavailable,
		Message: message,
	}
}
