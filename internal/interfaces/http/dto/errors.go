package dto

import (
	"net/http"
	"strings"
)

// Domain error codes surfaced over HTTP
const (
	ErrCodeInternal              = "INTERNAL_ERROR"
	ErrCodeBadRequest            = "BAD_REQUEST"
	ErrCodeUnauthorized          = "UNAUTHORIZED"
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeAlreadyExists         = "ALREADY_EXISTS"
	ErrCodeConcurrencyConflict   = "CONCURRENCY_CONFLICT"
	ErrCodeMissingStoreScope     = "MISSING_STORE_SCOPE"
	ErrCodeInvalidStoreScope     = "INVALID_STORE_SCOPE"
	ErrCodeReconciliationFailure = "RECONCILIATION_FAILURE"
	ErrCodeStorageUnavailable    = "STORAGE_UNAVAILABLE"
	ErrCodeDuplicateRequest      = "DUPLICATE_REQUEST"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:              http.StatusInternalServerError,
	ErrCodeBadRequest:            http.StatusBadRequest,
	ErrCodeUnauthorized:          http.StatusUnauthorized,
	ErrCodeNotFound:              http.StatusNotFound,
	ErrCodeAlreadyExists:         http.StatusConflict,
	ErrCodeConcurrencyConflict:   http.StatusConflict,
	ErrCodeMissingStoreScope:     http.StatusBadRequest,
	ErrCodeInvalidStoreScope:     http.StatusBadRequest,
	ErrCodeReconciliationFailure: http.StatusInternalServerError,
	ErrCodeStorageUnavailable:    http.StatusServiceUnavailable,
	ErrCodeDuplicateRequest:      http.StatusConflict,
	"INVALID_INPUT":              http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code. Validation
// codes from the domain follow the INVALID_ prefix convention and all map to
// 400; anything unrecognized is treated as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
