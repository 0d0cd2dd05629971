package huntr

import "github.com/herohuntr/huntr/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrUnknownKind        = domain.ErrUnknownKind
	ErrInvalidFilter      = domain.ErrInvalidFilter
	ErrPageOutOfRange     = domain.ErrPageOutOfRange
	ErrNoActiveQuery      = domain.ErrNoActiveQuery
	ErrBackendUnavailable = domain.ErrBackendUnavailable
	ErrBackendStatus      = domain.ErrBackendStatus
	ErrMalformedResponse  = domain.ErrMalformedResponse
)
