package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeMissingStoreScope, http.StatusBadRequest},
		{ErrCodeInvalidStoreScope, http.StatusBadRequest},
		{ErrCodeReconciliationFailure, http.StatusInternalServerError},
		{ErrCodeStorageUnavailable, http.StatusServiceUnavailable},
		{ErrCodeDuplicateRequest, http.StatusConflict},
		{"INVALID_QUANTITY", http.StatusBadRequest},
		{"INVALID_CUSTOMER_NAME", http.StatusBadRequest},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}
