package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"conflict is a 400", ErrConflict, http.StatusBadRequest},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"rate limited", ErrRateLimitExceeded, http.StatusTooManyRequests},
		{"upstream", ErrUpstream, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped sentinel", fmt.Errorf("repo: %w", ErrNotFound), http.StatusNotFound},
		{"app error code wins", New(http.StatusBadRequest, "all fields are required", ErrInvalidInput), http.StatusBadRequest},
		{"wrapped app error", fmt.Errorf("handler: %w", New(http.StatusNotFound, "student not found", ErrNotFound)), http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatus(tc.err))
		})
	}
}

func TestAppError(t *testing.T) {
	err := New(http.StatusBadRequest, "user with this email already exists", ErrConflict)

	assert.Equal(t, "user with this email already exists", err.Error())
	assert.True(t, errors.Is(err, ErrConflict))

	bare := New(http.StatusInternalServerError, "", ErrUpstream)
	assert.Equal(t, ErrUpstream.Error(), bare.Error())
}
