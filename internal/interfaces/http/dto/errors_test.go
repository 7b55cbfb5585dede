package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"NO_BUSINESS", http.StatusConflict},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"NOT_AVAILABLE", http.StatusUnprocessableEntity},
		{"NOT_DUE", http.StatusUnprocessableEntity},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"TOKEN_EXPIRED", http.StatusUnauthorized},
		{"ACCOUNT_DISABLED", http.StatusForbidden},
		{"TENANT_REQUIRED", http.StatusBadRequest},
		{"INVALID_INPUT", http.StatusBadRequest},
		{"INVALID_SIGNATURE", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestGetHTTPStatus_Fallbacks(t *testing.T) {
	// Unmapped INVALID_* codes are treated as semantic rejections
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus("INVALID_EMAIL"))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus("INVALID_PASSWORD"))
	// Everything unknown is an internal error
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_ELSE"))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(""))
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(2, 20, 45)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.PageSize)
	assert.Equal(t, int64(45), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestNewMeta_DefaultsPageSize(t *testing.T) {
	meta := NewMeta(1, 0, 5)
	assert.Equal(t, 20, meta.PageSize)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("NOT_FOUND", "Client not found", "req-1")
	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "Client not found", resp.Error.Message)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}
