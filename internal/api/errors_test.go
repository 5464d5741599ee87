package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mnemo-app/mnemo-api/internal/domain"
	"github.com/mnemo-app/mnemo-api/internal/service/auth"
	"github.com/mnemo-app/mnemo-api/internal/service/review"
	"github.com/mnemo-app/mnemo-api/internal/service/study"
	"github.com/mnemo-app/mnemo-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		err    error
		expect int
	}{
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"card not owned", review.ErrCardNotOwned, http.StatusForbidden},
		{"deck not owned", study.ErrDeckNotOwned, http.StatusForbidden},
		{"session not owned", review.ErrSessionNotOwned, http.StatusForbidden},
		{"card not found", review.ErrCardNotFound, http.StatusNotFound},
		{"deck not found", study.ErrDeckNotFound, http.StatusNotFound},
		{"session not found", store.ErrSessionNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"session already ended", domain.ErrSessionAlreadyEnded, http.StatusConflict},
		{"invalid rating", domain.ErrInvalidRating, http.StatusBadRequest},
		{"never reviewed", review.ErrCardNeverReviewed, http.StatusBadRequest},
		{"unknown error", errors.New("something broke"), http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("context: %w", review.ErrCardNotFound), http.StatusNotFound},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expect, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Card not found", GetSafeErrorMessage(review.ErrCardNotFound))
	assert.Equal(t, "Invalid rating", GetSafeErrorMessage(domain.ErrInvalidRating))

	// Raw internal details never leak through.
	internal := errors.New("pq: connection refused on 10.0.0.5")
	msg := GetSafeErrorMessage(internal)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "10.0.0.5")
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag")
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
