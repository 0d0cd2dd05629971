package domain

import "errors"

var (
	// ErrUnknownKind signals a search domain other than superhero or movie.
	ErrUnknownKind = errors.New("unknown search kind")
	// ErrInvalidFilter signals a filter update outside the declared schema.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrPageOutOfRange signals a page change outside [1, totalPages].
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrNoActiveQuery signals a page change before any query was submitted.
	ErrNoActiveQuery = errors.New("no active query")

	// ErrSessionNotFound signals a missing search session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions signals that the session limit is reached.
	ErrTooManySessions = errors.New("too many sessions")

	// ErrBackendUnavailable signals a transport-level failure talking to the search backend.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrBackendStatus signals a non-success HTTP status from the search backend.
	ErrBackendStatus = errors.New("backend returned non-success status")
	// ErrMalformedResponse signals a response body that could not be decoded.
	ErrMalformedResponse = errors.New("malformed backend response")
)
