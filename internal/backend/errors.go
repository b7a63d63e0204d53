package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
)

// errorBody — тело ошибки бэкенда. detail бывает строкой или списком ошибок полей.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// fieldError — элемент detail при ошибке валидации.
type fieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// decodeError превращает не-2xx ответ в AppError.
func decodeError(resp *http.Response) *apperror.AppError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message, details := parseDetail(raw)

	code := codeForStatus(resp.StatusCode)
	if message == "" {
		message = defaultMessage(code)
	}

	appErr := apperror.Wrap(
		fmt.Errorf("backend: код ответа %d", resp.StatusCode),
		code,
		message,
	)
	if len(details) > 0 {
		appErr.Details = details
	}
	return appErr
}

// parseDetail разбирает detail: строка возвращается как сообщение,
// список ошибок полей — как "loc.joined: msg" через ", " плюс построчные детали.
func parseDetail(raw []byte) (string, []string) {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return text, nil
	}

	var fields []fieldError
	if err := json.Unmarshal(body.Detail, &fields); err != nil || len(fields) == 0 {
		return "", nil
	}

	details := make([]string, 0, len(fields))
	for _, f := range fields {
		parts := make([]string, 0, len(f.Loc))
		for _, p := range f.Loc {
			parts = append(parts, fmt.Sprint(p))
		}
		details = append(details, strings.Join(parts, ".")+": "+f.Msg)
	}

	return strings.Join(details, ", "), details
}

func codeForStatus(status int) apperror.ErrorCode {
	switch {
	case status == http.StatusUnauthorized:
		return apperror.ErrCodeSessionExpired
	case status == http.StatusForbidden:
		return apperror.ErrCodeForbidden
	case status == http.StatusNotFound:
		return apperror.ErrCodeNotFound
	case status == http.StatusConflict:
		return apperror.ErrCodeConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return apperror.ErrCodeValidation
	default:
		return apperror.ErrCodeUpstream
	}
}

func defaultMessage(code apperror.ErrorCode) string {
	switch code {
	case apperror.ErrCodeSessionExpired:
		return apperror.ErrSessionExpired.Message
	case apperror.ErrCodeForbidden:
		return apperror.ErrForbidden.Message
	case apperror.ErrCodeNotFound:
		return "ресурс не найден"
	case apperror.ErrCodeValidation:
		return "некорректные данные"
	default:
		return "ошибка сервиса, попробуйте позже"
	}
}
