package model

import (
	"sort"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeInvalidPagination = "INVALID_PAGINATION"
	ErrCodeInvalidDate       = "INVALID_DATE"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeUpstreamFormat    = "UPSTREAM_FORMAT"
	ErrCodeUpstreamDown      = "UPSTREAM_UNAVAILABLE"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidPagination = NewDomainError(ErrCodeInvalidPagination, "Both page_size and page_number must be positive integers")
	ErrInvalidPageLimit  = NewDomainError(ErrCodeInvalidPagination, "Both page and limit must be positive integers")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrMissingFields     = NewDomainError(ErrCodeMissingField, "Missing required fields")
	ErrUpstreamFormat    = NewDomainError(ErrCodeUpstreamFormat, "Unexpected API response format")
)

// InvalidDateError reports a date query parameter that is not a real YYYY-MM-DD date.
func InvalidDateError(param string) *DomainError {
	return NewDomainError(ErrCodeInvalidDate, "Invalid "+param+" format. Expected YYYY-MM-DD.")
}

// ValidationError carries per-field messages for a rejected request body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, "field '"+name+"' "+e.Fields[name])
	}
	return strings.Join(msgs, "; ")
}

// Is lets errors.Is(err, ErrMissingFields) match any validation failure.
func (e *ValidationError) Is(target error) bool {
	return target == ErrMissingFields
}
