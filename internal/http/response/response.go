package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
)

// RedirectAfterMs — задержка перед переходом на страницу входа после истечения сессии.
const RedirectAfterMs = 2000

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	// RedirectTo и RedirectAfterMs говорят браузеру, куда перейти после ошибки авторизации.
	RedirectTo      string `json:"redirect_to,omitempty"`
	RedirectAfterMs int    `json:"redirect_after_ms,omitempty"`
}

type ErrorInfo struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// Error отдаёт AppError как есть; прочие ошибки маскируются как внутренние.
func Error(c *gin.Context, err error) {
	c.JSON(envelope(err))
}

// Redirect отдаёт ошибку вместе с адресом перехода.
func Redirect(c *gin.Context, err error, to string, afterMs int) {
	status, body := envelope(err)
	body.RedirectTo = to
	body.RedirectAfterMs = afterMs
	c.AbortWithStatusJSON(status, body)
}

func envelope(err error) (int, Response) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus, Response{
			Success: false,
			Error: &ErrorInfo{
				Code:    string(appErr.Code),
				Message: appErr.Message,
				Details: appErr.Details,
			},
		}
	}

	return http.StatusInternalServerError, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    string(apperror.ErrCodeInternal),
			Message: "внутренняя ошибка сервера",
		},
	}
}

func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, apperror.ErrCodeBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, apperror.ErrCodeNotFound, message)
}

func TooManyRequests(c *gin.Context, message string) {
	abort(c, http.StatusTooManyRequests, "RATE_LIMITED", message)
}

func abort(c *gin.Context, status int, code apperror.ErrorCode, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    string(code),
			Message: message,
		},
	})
}
