// Package handlers provides the HTTP handler implementations for the
// public API.
//
// This file defines the response envelopes shared by every endpoint and
// the single error-to-response translator. The goal is uniform responses
// for both success and failure:
//
//	HTTP/1.1 200 OK
//	{ "status": "success", "data": {...}, "message": "Branch retrieved" }
//
//	HTTP/1.1 404 Not Found
//	{ "status": "error", "message": "Branch with ID \"b1\" not found.", "code": "NOT_FOUND" }
//
// Conventions:
//   - Handlers never format error bodies themselves; every failure path
//     goes through respondError(), which recognizes typed apperr values and
//     falls back to a generic 500 for anything else (logging the original
//     message for operators, never leaking it to clients).
//   - Exactly one response is written per request: all error writes go
//     through gin's AbortWithStatusJSON.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kdallas/go-branch-directory/internal/apperr"
	"github.com/kdallas/go-branch-directory/internal/http/middleware"
)

// SuccessResponse is the fixed success envelope.
type SuccessResponse struct {
	Status  string `json:"status" example:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty" example:"Branch retrieved"`
}

// ErrorResponse is the fixed error envelope. Errors carries the per-field
// violation list on validation failures.
type ErrorResponse struct {
	Status  string   `json:"status" example:"error"`
	Message string   `json:"message" example:"Resource not found"`
	Code    string   `json:"code" example:"NOT_FOUND"`
	Errors  []string `json:"errors,omitempty"`
}

// ok writes a success envelope with the given status code.
func ok(c *gin.Context, status int, data any, message string) {
	c.JSON(status, SuccessResponse{Status: "success", Data: data, Message: message})
}

// respondError is the sole translator from an internal error value to an
// HTTP response. Typed errors answer with their declared status and code;
// anything else becomes a generic 500 with code UNKNOWN_ERROR while the
// underlying message goes to the request log only.
func respondError(c *gin.Context, err error) {
	if e, found := apperr.From(err); found {
		if e.Status >= http.StatusInternalServerError {
			middleware.LoggerFrom(c).Error().
				Int("status", e.Status).
				Str("code", e.Code).
				AnErr("cause", e.Err).
				Msg(e.Message)
		}
		c.AbortWithStatusJSON(e.Status, ErrorResponse{Status: "error", Message: e.Message, Code: e.Code})
		return
	}

	middleware.LoggerFrom(c).Error().Err(err).Msg("unclassified error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Status:  "error",
		Message: "An unexpected error occurred. Please try again.",
		Code:    apperr.CodeUnknown,
	})
}

// failValidation rejects a request whose payload violated its schema,
// reporting every violation at once.
func failValidation(c *gin.Context, violations []string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Status:  "error",
		Message: "Invalid input",
		Code:    apperr.CodeValidation,
		Errors:  violations,
	})
}

// Fail writes an error envelope directly. Used by router fallbacks
// (NoRoute/NoMethod) that have no service error to translate.
func Fail(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Status: "error", Message: msg, Code: code})
}
