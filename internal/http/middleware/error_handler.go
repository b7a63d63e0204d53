package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skill-connector/internal/http/response"
	"github.com/ignatzorin/skill-connector/internal/logger"
	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки централизованно.
// AppError отдаётся клиенту как есть, остальные ошибки маскируются.
// Истёкшая сессия дополнительно удаляет cookie и просит браузер перейти на вход.
func ErrorHandler(cookies *Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Проверяем, не был ли уже отправлен ответ
		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		code := apperror.CodeOf(err)

		entry := logger.Log.WithFields(logrus.Fields{
			"error":      err.Error(),
			"code":       code,
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString(ContextRequestIDKey),
		})

		if statusOf(err) >= http.StatusInternalServerError {
			entry.Error("Request error")
		} else {
			entry.Warn("Request error")
		}

		if code == apperror.ErrCodeSessionExpired {
			realm := UserRealm
			if v, ok := c.Get(ContextRealmKey); ok {
				if r, ok := v.(Realm); ok {
					realm = r
				}
			}
			cookies.Clear(c, realm)
			response.Redirect(c, err, realm.LoginPath, response.RedirectAfterMs)
			return
		}

		response.Error(c, err)
	}
}

func statusOf(err error) int {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
