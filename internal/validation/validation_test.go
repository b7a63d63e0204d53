package validation

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("Mario.Rossi+work@Example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("no-at.example.com"))
	assert.Error(t, ValidateEmail("a@b@c.com"))
	assert.Error(t, ValidateEmail("user@localhost"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 73)))
	assert.NoError(t, ValidatePasswordConfirmation("secret123", "secret123"))
	assert.EqualError(t, ValidatePasswordConfirmation("secret123", "secret124"), "пароли не совпадают")
}

func TestValidateCoordinates(t *testing.T) {
	assert.NoError(t, ValidateCoordinates(nil, nil))
	assert.NoError(t, ValidateCoordinates(ptr(52.5), ptr(13.4)))
	assert.NoError(t, ValidateCoordinates(ptr(-90.0), ptr(180.0)))
	assert.Error(t, ValidateCoordinates(ptr(91.0), ptr(0.0)))
	assert.Error(t, ValidateCoordinates(ptr(0.0), ptr(-180.5)))
	assert.Error(t, ValidateCoordinates(ptr(10.0), nil))
}

func TestSkillRules(t *testing.T) {
	assert.NoError(t, ValidateSkillName("Go"))
	assert.Error(t, ValidateSkillName(" x "))
	assert.Error(t, ValidateSkillName(strings.Repeat("a", 101)))

	assert.NoError(t, ValidateSkillDescription(nil))
	assert.Error(t, ValidateSkillDescription(ptr(strings.Repeat("a", 501))))

	assert.NoError(t, ValidateExperience(0))
	assert.NoError(t, ValidateExperience(50))
	assert.Error(t, ValidateExperience(51))
	assert.Error(t, ValidateExperience(-1))

	assert.NoError(t, ValidateHourlyRate(nil))
	assert.NoError(t, ValidateHourlyRate(ptr(10000.0)))
	assert.Error(t, ValidateHourlyRate(ptr(10000.01)))
	assert.Error(t, ValidateHourlyRate(ptr(-1.0)))

	assert.NoError(t, ValidateCurrency("EUR"))
	assert.Error(t, ValidateCurrency("eur"))
	assert.Error(t, ValidateCurrency("EURO"))
}

func TestValidateProfileFields(t *testing.T) {
	assert.NoError(t, ValidateFullName("Иван Петров"))
	assert.Error(t, ValidateFullName("И"))
	assert.Error(t, ValidatePhone(ptr(strings.Repeat("1", 21))))
	assert.Error(t, ValidateBio(ptr(strings.Repeat("б", 501))))
	assert.NoError(t, ValidateBio(ptr(strings.Repeat("б", 500))))
}

func TestBindingErrors(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterTags(v))

	type form struct {
		Email    string  `validate:"required,email"`
		Currency string  `validate:"currency"`
		Name     string  `validate:"notblank"`
		Lat      float64 `validate:"latitude"`
	}

	err := v.Struct(form{Email: "bad", Currency: "usd", Name: "  ", Lat: 120})
	msgs := BindingErrors(err)
	assert.ElementsMatch(t, []string{
		"Email: некорректный email",
		"Currency: трёхбуквенный код валюты",
		"Name: обязательное поле",
		"Lat: широта должна быть от -90 до 90",
	}, msgs)

	assert.Nil(t, BindingErrors(assert.AnError))
}
