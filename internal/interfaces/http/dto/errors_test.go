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
		{"EMAIL_TAKEN", http.StatusConflict},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		{"ACCOUNT_DEACTIVATED", http.StatusForbidden},
		{"INVALID_TRANSITION", http.StatusUnprocessableEntity},
		{"SELF_DEACTIVATION", http.StatusUnprocessableEntity},
		{"SERVICE_UNAVAILABLE", http.StatusServiceUnavailable},
		{"UPSTREAM_ERROR", http.StatusBadGateway},
		{"RATE_LIMITED", http.StatusTooManyRequests},
		// validation codes map by prefix
		{"INVALID_EMAIL", http.StatusBadRequest},
		{"INVALID_SENDER", http.StatusBadRequest},
		{"MISSING_ITEMS", http.StatusBadRequest},
		// unknown codes never leak as client errors
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]int{1, 2, 3}, 45, 2, 20)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}
