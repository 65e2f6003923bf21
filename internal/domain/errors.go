package domain

import (
	"errors"
	"net/http"
)

// Error is a typed domain failure carrying the HTTP status code it should
// be rendered with. Services return these for anticipated failures; the
// HTTP layer renders them verbatim inside the error envelope.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound signals that a referenced entity does not exist.
func NotFound(message string) *Error {
	return &Error{Code: http.StatusNotFound, Message: message}
}

// Validation signals that an input violates a domain rule, as opposed to a
// schema-shape error.
func Validation(message string) *Error {
	return &Error{Code: http.StatusUnprocessableEntity, Message: message}
}

// BadRequest signals a malformed request. Reserved for future use.
func BadRequest(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

// Conflict signals a conflicting write. Reserved; no current operation
// returns it.
func Conflict(message string) *Error {
	return &Error{Code: http.StatusConflict, Message: message}
}

// AsError unwraps err into a *Error if one is present in its chain.
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}
