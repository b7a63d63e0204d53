package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
)

func serve(h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", h)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestError_AppErrorWithDetails(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Error(c, apperror.New(apperror.ErrCodeValidation, "skill_name: too short").
			WithDetails([]string{"body.skill_name: too short"}))
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, []string{"body.skill_name: too short"}, body.Error.Details)
}

func TestError_MasksUnknownErrors(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Error(c, errors.New("pq: connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestRedirect(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Redirect(c, apperror.ErrSessionExpired, "/login", RedirectAfterMs)
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{
		"success": false,
		"error": {"code": "SESSION_EXPIRED", "message": "сессия истекла, войдите снова"},
		"redirect_to": "/login",
		"redirect_after_ms": 2000
	}`, w.Body.String())
}
