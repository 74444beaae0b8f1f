// Package apperr defines the typed failures used across the service and
// repository layers. Every Error carries a human-readable message, a stable
// machine-readable code, and the HTTP status the boundary should answer
// with, so that the single HTTP error responder can translate any failure
// without inspecting where it came from.
//
// Kinds:
//
//	Validation    400 VALIDATION_ERROR   input failed schema or business checks
//	NotFound      404 NOT_FOUND          referenced entity does not exist
//	Unauthorized  401 UNAUTHORIZED       missing/invalid credentials
//	Forbidden     403 FORBIDDEN          insufficient permission
//	Repository    500 REPOSITORY_ERROR   backing store operation failed
//	Service       500 SERVICE_ERROR      unclassified business-logic failure
//
// Repository errors may carry a remapped status (e.g. 409 when the store
// reported an already-exists condition) while keeping the REPOSITORY_ERROR
// code; see the repo package for the remap table.
package apperr

import (
	"errors"
	"net/http"
)

// Stable machine-readable error codes returned to clients.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeRepository   = "REPOSITORY_ERROR"
	CodeService      = "SERVICE_ERROR"

	// CodeUnknown is used by the HTTP responder for errors that are not
	// an *Error; it is never attached to an Error constructed here.
	CodeUnknown = "UNKNOWN_ERROR"
)

// Error is the base typed failure. It satisfies the error interface and
// unwraps to its cause, so callers can use errors.Is/As through it.
type Error struct {
	// Status is the HTTP status the boundary should respond with.
	Status int
	// Code is a stable machine-readable identifier.
	Code string
	// Message is safe to return to clients.
	Message string
	// Err is the wrapped cause, kept for logs; never sent to clients.
	Err error
}

// Error returns the client-safe message.
func (e *Error) Error() string { return e.Message }

// Unwrap exposes the cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Err }

// Validation reports invalid input (400 VALIDATION_ERROR).
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Message: msg}
}

// NotFound reports a missing entity (404 NOT_FOUND).
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: msg}
}

// Unauthorized reports missing or invalid credentials (401 UNAUTHORIZED).
func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: CodeUnauthorized, Message: msg}
}

// Forbidden reports insufficient permission (403 FORBIDDEN).
func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Code: CodeForbidden, Message: msg}
}

// Repository reports a backing-store failure (REPOSITORY_ERROR). The status
// defaults to 500; callers that remapped a recognizable store code pass the
// remapped status instead.
func Repository(status int, msg string, cause error) *Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return &Error{Status: status, Code: CodeRepository, Message: msg, Err: cause}
}

// Service reports an unclassified business-logic failure (500 SERVICE_ERROR).
func Service(msg string, cause error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: CodeService, Message: msg, Err: cause}
}

// From extracts the typed *Error from err's chain, if present.
func From(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsNotFound reports whether err's chain contains a NOT_FOUND Error.
func IsNotFound(err error) bool {
	if e, ok := From(err); ok {
		return e.Code == CodeNotFound
	}
	return false
}
