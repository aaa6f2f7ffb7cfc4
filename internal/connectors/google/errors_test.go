package google

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"

	"github.com/classkit-labs/handout-cli/internal/core/domain"
)

func apiError(code int) error {
	return &googleapi.Error{Code: code, Message: http.StatusText(code)}
}

func TestWrapError_MapsStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		code int
		want error
	}{
		{"unauthorised", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapError(apiError(tt.code), "get file")
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "get file")
		})
	}
}

func TestWrapError_CarriesDomainSentinels(t *testing.T) {
	// Callers above the connector match on the domain sentinels, so the
	// wrapped errors must satisfy errors.Is for both layers.
	tests := []struct {
		name string
		code int
		want error
	}{
		{"not found", http.StatusNotFound, domain.ErrNotFound},
		{"unauthorised", http.StatusUnauthorized, domain.ErrAuthRequired},
		{"rate limited", http.StatusTooManyRequests, domain.ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapError(apiError(tt.code), "stat")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWrapError_PassThrough(t *testing.T) {
	assert.NoError(t, WrapError(nil, "noop"))

	plain := errors.New("connection reset")
	err := WrapError(plain, "list folder")
	assert.ErrorIs(t, err, plain)

	server := WrapError(apiError(http.StatusInternalServerError), "copy file")
	assert.NotErrorIs(t, server, domain.ErrNotFound)
	assert.Contains(t, server.Error(), "copy file")
}

func TestIsHelpers(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", ErrNotFound)))
	assert.True(t, IsNotFound(apiError(http.StatusNotFound)))
	assert.False(t, IsNotFound(apiError(http.StatusForbidden)))

	assert.True(t, IsUnauthorized(apiError(http.StatusUnauthorized)))
	assert.True(t, IsForbidden(apiError(http.StatusForbidden)))
	assert.True(t, IsRateLimited(apiError(http.StatusTooManyRequests)))
}
