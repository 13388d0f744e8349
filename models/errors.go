package models

import (
	"errors"
	"net/http"
)

// Error taxonomy shared by adapters, services, and handlers. Services
// wrap these sentinels with fmt.Errorf("...: %w", ...) so callers can
// classify failures with errors.Is.
var (
	// ErrSourceUnavailable means an upstream API was down or timed out
	// after retries were exhausted.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrPlayerNotFound means the stat source has no record of the player.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrInsufficientData means not enough game history exists to
	// predict. Batch operations skip the entity instead of failing.
	ErrInsufficientData = errors.New("insufficient game data")

	// ErrQuotaExceeded means the odds provider rejected the request for
	// quota reasons and callers should back off.
	ErrQuotaExceeded = errors.New("odds api quota exceeded")

	// ErrValidation means the caller supplied malformed parameters.
	ErrValidation = errors.New("validation error")

	// ErrUnauthorized means the request lacked valid credentials.
	ErrUnauthorized = errors.New("unauthorized")
)

// ErrorKind is the machine-readable error identifier returned to API clients
type ErrorKind string

const (
	KindSourceUnavailable ErrorKind = "source_unavailable"
	KindPlayerNotFound    ErrorKind = "player_not_found"
	KindInsufficientData  ErrorKind = "insufficient_data"
	KindQuotaExceeded     ErrorKind = "quota_exceeded"
	KindValidation        ErrorKind = "validation_error"
	KindUnauthorized      ErrorKind = "unauthorized"
	KindInternal          ErrorKind = "internal_error"
)

// Kind classifies an error chain into its taxonomy bucket
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrPlayerNotFound):
		return KindPlayerNotFound
	case errors.Is(err, ErrInsufficientData):
		return KindInsufficientData
	case errors.Is(err, ErrQuotaExceeded):
		return KindQuotaExceeded
	case errors.Is(err, ErrSourceUnavailable):
		return KindSourceUnavailable
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	default:
		return KindInternal
	}
}

// HTTPStatus maps an error kind to its response status code
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindPlayerNotFound:
		return http.StatusNotFound
	case KindInsufficientData:
		return http.StatusUnprocessableEntity
	case KindQuotaExceeded:
		return http.StatusTooManyRequests
	case KindSourceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
