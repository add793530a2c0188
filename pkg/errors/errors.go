// Package errors defines the API error vocabulary for the triage service.
// The triage engine itself never returns errors; these cover the HTTP
// surface around it.
package errors

import (
	"github.com/go-kratos/kratos/v2/errors"
)

// Common errors returned by the API layer.
var (
	ErrBadRequest       = errors.BadRequest("BAD_REQUEST", "Bad request")
	ErrEmptyMessage     = errors.BadRequest("EMPTY_MESSAGE", "Message must not be empty")
	ErrRecordNotFound   = errors.NotFound("RECORD_NOT_FOUND", "Triage record not found")
	ErrStoreUnavailable = errors.ServiceUnavailable("STORE_UNAVAILABLE", "Triage record store unavailable")
	ErrInternalServer   = errors.InternalServer("INTERNAL_SERVER_ERROR", "Internal server error")
)

// NewBadRequest creates a new bad request error.
func NewBadRequest(reason, message string) *errors.Error {
	return errors.BadRequest(reason, message)
}

// NewInternalServerError creates a new internal server error.
func NewInternalServerError(reason, message string) *errors.Error {
	return errors.InternalServer(reason, message)
}
