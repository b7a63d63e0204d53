package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_StatusMapping(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		status int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeSessionExpired, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUpstreamUnavailable, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, New(tt.code, "x").HTTPStatus)
		})
	}
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("backend: get user: %w", New(ErrCodeNotFound, "User not found"))

	assert.True(t, errors.Is(err, ErrUserNotFound))
	assert.True(t, IsNotFound(err))
	assert.False(t, IsForbidden(err))
}

func TestAppError_WrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(cause, ErrCodeUpstreamUnavailable, "сервис недоступен")

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsUpstreamUnavailable(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAppError_WithDetailsCopies(t *testing.T) {
	base := New(ErrCodeValidation, "ошибка валидации")
	withDetails := base.WithDetails([]string{"body.skill_name: too short"})

	assert.Empty(t, base.Details)
	assert.Equal(t, []string{"body.skill_name: too short"}, withDetails.Details)
}

func TestIsSessionExpired(t *testing.T) {
	assert.True(t, IsSessionExpired(ErrSessionExpired))
	assert.True(t, IsSessionExpired(ErrUnauthorized))
	assert.False(t, IsSessionExpired(errors.New("boom")))
}
