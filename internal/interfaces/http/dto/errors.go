package dto

import (
	"net/http"
	"strings"
)

// API error codes. Domain errors carry their own codes; these cover the
// HTTP layer itself.
const (
	ErrCodeValidation      = "VALIDATION_FAILED"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeBadRequest      = "BAD_REQUEST"
)

// errorCodeHTTPStatus maps domain and API error codes to HTTP status codes.
// Codes absent here fall back to prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	"NOT_FOUND":            http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"NOT_AVAILABLE":        http.StatusUnprocessableEntity,
	"NOT_DUE":              http.StatusUnprocessableEntity,
	"INVALID_CREDENTIALS":  http.StatusUnauthorized,
	"TOKEN_EXPIRED":        http.StatusUnauthorized,
	"ACCOUNT_DISABLED":     http.StatusForbidden,
	"FORBIDDEN":            http.StatusForbidden,
	"NO_BUSINESS":          http.StatusConflict,
	"NO_CUSTOMER":          http.StatusConflict,
	"TENANT_REQUIRED":      http.StatusBadRequest,
	"INVALID_INPUT":        http.StatusBadRequest,
	"INVALID_SIGNATURE":    http.StatusBadRequest,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeInternal:        http.StatusInternalServerError,
}

// GetHTTPStatus resolves the HTTP status for an error code. Unknown
// INVALID_* codes are treated as rejected input; anything else unknown is
// a server error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
