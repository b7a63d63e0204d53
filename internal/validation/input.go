package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinFullNameLength         = 2
	MaxFullNameLength         = 100
	MaxPhoneLength            = 20
	MaxBioLength              = 500
	MinSkillNameLength        = 2
	MaxSkillNameLength        = 100
	MaxSkillDescriptionLength = 500
	MinExperienceYears        = 0
	MaxExperienceYears        = 50
	MinHourlyRate             = 0.0
	MaxHourlyRate             = 10000.0
	MinMessageLength          = 1
	MaxMessageLength          = 5000
	MaxSearchLength           = 200
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	currencyRegex    = regexp.MustCompile(`^[A-Z]{3}$`)
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	localPart, domainPart, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domainPart, "@") {
		return fmt.Errorf("некорректный формат email")
	}

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	if !emailLocalRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}
	if !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateFullName проверяет имя пользователя.
func ValidateFullName(name string) error {
	if err := ValidateNonEmpty("имя", name); err != nil {
		return err
	}
	return ValidateLength("имя", strings.TrimSpace(name), MinFullNameLength, MaxFullNameLength)
}

// ValidatePhone проверяет необязательный телефон.
func ValidatePhone(phone *string) error {
	if phone == nil {
		return nil
	}
	return ValidateLength("телефон", *phone, 0, MaxPhoneLength)
}

// ValidateBio проверяет необязательное описание профиля.
func ValidateBio(bio *string) error {
	if bio == nil {
		return nil
	}
	return ValidateLength("описание", *bio, 0, MaxBioLength)
}

// ValidateCoordinates проверяет пару координат. Задавать можно только обе сразу.
func ValidateCoordinates(lat, lng *float64) error {
	if lat == nil && lng == nil {
		return nil
	}
	if lat == nil || lng == nil {
		return fmt.Errorf("нужно указать и широту, и долготу")
	}
	if *lat < -90 || *lat > 90 {
		return fmt.Errorf("широта должна быть от -90 до 90")
	}
	if *lng < -180 || *lng > 180 {
		return fmt.Errorf("долгота должна быть от -180 до 180")
	}
	return nil
}

// ValidateSkillName проверяет название навыка.
func ValidateSkillName(name string) error {
	if err := ValidateNonEmpty("название навыка", name); err != nil {
		return err
	}
	return ValidateLength("название навыка", strings.TrimSpace(name), MinSkillNameLength, MaxSkillNameLength)
}

// ValidateSkillDescription проверяет описание навыка.
func ValidateSkillDescription(description *string) error {
	if description == nil {
		return nil
	}
	return ValidateLength("описание навыка", *description, 0, MaxSkillDescriptionLength)
}

// ValidateExperience проверяет стаж в годах.
func ValidateExperience(years int) error {
	if years < MinExperienceYears || years > MaxExperienceYears {
		return fmt.Errorf("стаж должен быть от %d до %d лет", MinExperienceYears, MaxExperienceYears)
	}
	return nil
}

// ValidateHourlyRate проверяет почасовую ставку.
func ValidateHourlyRate(rate *float64) error {
	if rate == nil {
		return nil
	}
	if *rate < MinHourlyRate {
		return fmt.Errorf("ставка не может быть отрицательной")
	}
	if *rate > MaxHourlyRate {
		return fmt.Errorf("ставка не может превышать %.0f", MaxHourlyRate)
	}
	return nil
}

// ValidateCurrency проверяет код валюты из трёх заглавных букв.
func ValidateCurrency(currency string) error {
	if !currencyRegex.MatchString(currency) {
		return fmt.Errorf("валюта должна быть трёхбуквенным кодом, например USD")
	}
	return nil
}

// ValidateMessageContent проверяет текст сообщения.
func ValidateMessageContent(content string) error {
	if err := ValidateNonEmpty("сообщение", content); err != nil {
		return err
	}
	return ValidateLength("сообщение", content, MinMessageLength, MaxMessageLength)
}

// ValidateSearchQuery ограничивает длину поискового запроса.
func ValidateSearchQuery(q string) error {
	return ValidateLength("поисковый запрос", q, 0, MaxSearchLength)
}
