package common

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/skill-connector/internal/http/middleware"
	"github.com/ignatzorin/skill-connector/internal/models"
	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
	"github.com/ignatzorin/skill-connector/internal/validation"
)

var (
	// ErrNoSession is returned when the auth middleware did not put a session into the context
	ErrNoSession = apperror.New(apperror.ErrCodeUnauthorized, "требуется авторизация")

	// ErrInvalidUUID is returned when UUID parsing fails
	ErrInvalidUUID = apperror.New(apperror.ErrCodeBadRequest, "неверный формат UUID")
)

// CurrentSession extracts the session stored by middleware.SessionAuth
func CurrentSession(c *gin.Context) (*models.Session, error) {
	raw, exists := c.Get(middleware.ContextSessionKey)
	if !exists {
		return nil, ErrNoSession
	}

	session, ok := raw.(*models.Session)
	if !ok || session == nil {
		return nil, ErrNoSession
	}

	return session, nil
}

// ParseUUIDParam parses UUID from URL parameter
func ParseUUIDParam(c *gin.Context, paramName string) (uuid.UUID, error) {
	param := c.Param(paramName)
	if param == "" {
		return uuid.Nil, apperror.New(apperror.ErrCodeBadRequest, fmt.Sprintf("параметр %s отсутствует", paramName))
	}

	parsed, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}

	return parsed, nil
}

// BindJSON binds the JSON body and turns binding failures into a VALIDATION_ERROR with per-field details
func BindJSON(c *gin.Context, req interface{}) error {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return nil
	}

	details := validation.BindingErrors(err)
	if len(details) == 0 {
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса")
	}
	return apperror.Wrap(err, apperror.ErrCodeValidation, details[0]).WithDetails(details)
}

// Fail records err for middleware.ErrorHandler and stops the chain
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ParseIntQuery safely reads an integer query parameter with a fallback value
func ParseIntQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}
