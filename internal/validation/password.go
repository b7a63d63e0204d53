package validation

import "fmt"

const (
	MinPasswordLength = 8
	// MaxPasswordBytes — предел bcrypt на стороне бэкенда.
	MaxPasswordBytes = 72
)

// ValidatePassword проверяет длину пароля.
// Требования к сложности проверяет бэкенд; портал отсекает только заведомо неверное.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("пароль должен быть не менее %d символов", MinPasswordLength)
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("пароль должен быть не более %d байт", MaxPasswordBytes)
	}
	return nil
}

// ValidatePasswordConfirmation проверяет совпадение пароля и подтверждения.
func ValidatePasswordConfirmation(password, confirm string) error {
	if password != confirm {
		return fmt.Errorf("пароли не совпадают")
	}
	return nil
}
