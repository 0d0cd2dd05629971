package chi

import (
	"github.com/herohuntr/huntr/internal/domain/search/filter"
	"github.com/herohuntr/huntr/internal/domain/search/kind"
	"github.com/herohuntr/huntr/internal/usecase/search"
	"github.com/herohuntr/huntr/internal/view"
)

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes returned by the API.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized     ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed ErrorResponseCode = "validation_failed"
	ErrorResponseCodeUnknownKind      ErrorResponseCode = "unknown_kind"
	ErrorResponseCodePageOutOfRange   ErrorResponseCode = "page_out_of_range"
	ErrorResponseCodeNoActiveQuery    ErrorResponseCode = "no_active_query"
	ErrorResponseCodeSessionNotFound  ErrorResponseCode = "session_not_found"
	ErrorResponseCodeTooManySessions  ErrorResponseCode = "too_many_sessions"
	ErrorResponseCodeNotFound         ErrorResponseCode = "not_found"
	ErrorResponseCodeMethodNotAllowed ErrorResponseCode = "method_not_allowed"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SessionResponse carries a session's state and its render model.
type SessionResponse struct {
	ID    string       `json:"id"`
	State search.State `json:"state"`
	View  view.View    `json:"view"`
}

// SchemaResponse describes the filters available for a kind.
type SchemaResponse struct {
	Kind     kind.Kind      `json:"kind"`
	Fields   []filter.Field `json:"fields"`
	Defaults filter.Set     `json:"defaults"`
}

// FiltersRequest is the body of PUT /sessions/{id}/filters.
type FiltersRequest struct {
	Kind string `json:"kind"`
	filter.Values
}
