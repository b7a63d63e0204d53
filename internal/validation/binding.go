package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterBindingValidators регистрирует собственные теги в валидаторе gin.
func RegisterBindingValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("validation: неожиданный движок валидации gin")
	}
	return RegisterTags(v)
}

// RegisterTags добавляет теги currency и notblank.
func RegisterTags(v *validator.Validate) error {
	if err := v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return currencyRegex.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("validation: currency: %w", err)
	}
	if err := v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	}); err != nil {
		return fmt.Errorf("validation: notblank: %w", err)
	}
	return nil
}

// BindingErrors превращает ошибку биндинга в список понятных сообщений.
// Для ошибок, не связанных с тегами (битый JSON), возвращает nil.
func BindingErrors(err error) []string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return msgs
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return field + ": обязательное поле"
	case "email":
		return field + ": некорректный email"
	case "min":
		return fmt.Sprintf("%s: минимум %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s: максимум %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s: не меньше %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s: не больше %s", field, fe.Param())
	case "latitude":
		return field + ": широта должна быть от -90 до 90"
	case "longitude":
		return field + ": долгота должна быть от -180 до 180"
	case "currency":
		return field + ": трёхбуквенный код валюты"
	case "eqfield":
		return fmt.Sprintf("%s: должно совпадать с %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: одно из %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s: не прошло проверку (%s)", field, fe.Tag())
	}
}
