package dto

import "net/http"

// Error codes exposed by the API
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeInvalidState  = "INVALID_STATE"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// httpStatusByCode maps API error codes to HTTP status codes. Domain codes
// not listed here fall through to 500.
var httpStatusByCode = map[string]int{
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeValidation:       http.StatusBadRequest,
	"TENANT_MISSING":        http.StatusBadRequest,
	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeConflict:         http.StatusConflict,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,
	"OPTIMISTIC_LOCK_ERROR": http.StatusConflict,
	"CHAIN_WRITE_CONFLICT":  http.StatusConflict,
	ErrCodeInvalidState:     http.StatusUnprocessableEntity,
	"NOT_BALANCED":          http.StatusUnprocessableEntity,
	"UNBALANCED_ENTRY":      http.StatusUnprocessableEntity,
	"AUDIT_FAILURE":         http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an API error code
func GetHTTPStatus(code string) int {
	if status, ok := httpStatusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
