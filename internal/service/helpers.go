package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ignatzorin/skill-connector/internal/dto"
	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
)

// validationError собирает ненулевые ошибки проверок в одну VALIDATION_ERROR.
func validationError(checks ...error) error {
	details := make([]string, 0, len(checks))
	for _, err := range checks {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) == 0 {
		return nil
	}
	return apperror.New(apperror.ErrCodeValidation, details[0]).WithDetails(details)
}

// noticeMessage — текст для notice: сообщение AppError или общий текст.
func noticeMessage(err error, fallback string) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code != apperror.ErrCodeInternal {
		return fallback + ": " + appErr.Message
	}
	return fallback
}

// cancelled сообщает, что клиент ушёл и продолжать нет смысла.
func cancelled(ctx context.Context) bool {
	return ctx.Err() != nil
}

// prependNotice ставит notice о результате действия перед остальными.
func prependNotice(n *dto.Notices, level, message string) {
	n.Notices = append([]dto.Notice{dto.NewNotice(level, message)}, n.Notices...)
}

// partialNotice — предупреждение о неполном каталоге.
func partialNotice(failed int) string {
	return fmt.Sprintf("Не удалось загрузить навыки %d специалистов, результаты неполные", failed)
}
