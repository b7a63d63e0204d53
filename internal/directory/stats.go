package directory

import (
	"fmt"
	"math"

	"github.com/ignatzorin/skill-connector/internal/models"
)

// profileFields — сколько пунктов учитывает заполненность профиля.
const profileFields = 5

// Completeness — процент заполненности профиля: имя, о себе, телефон,
// хотя бы один навык и обе ненулевые координаты.
func Completeness(user models.User, skills []models.Skill) int {
	completed := 0
	if user.FullName != "" {
		completed++
	}
	if user.Bio != nil && *user.Bio != "" {
		completed++
	}
	if user.Phone != nil && *user.Phone != "" {
		completed++
	}
	if len(skills) > 0 {
		completed++
	}
	if user.HasLocation() {
		completed++
	}
	return int(math.Round(float64(completed) / profileFields * 100))
}

// AverageRate — средняя ставка по всем навыкам; навык без ставки считается как 0.
func AverageRate(skills []models.Skill) float64 {
	if len(skills) == 0 {
		return 0
	}
	var sum float64
	for _, s := range skills {
		if s.HourlyRate != nil {
			sum += s.HourlyRate.Float64()
		}
	}
	return sum / float64(len(skills))
}

// RateLabel форматирует ставку для карточки: "$45/hr".
func RateLabel(rate float64) string {
	return fmt.Sprintf("$%.0f/hr", rate)
}

// Available — свободен ли специалист хотя бы по одному навыку.
func Available(skills []models.Skill) bool {
	for _, s := range skills {
		if s.IsAvailable {
			return true
		}
	}
	return false
}

// MaxExperience — наибольший стаж среди навыков.
func MaxExperience(skills []models.Skill) int {
	best := 0
	for _, s := range skills {
		if s.ExperienceYears > best {
			best = s.ExperienceYears
		}
	}
	return best
}

// SkillRow — строка таблицы навыков в админке.
type SkillRow struct {
	SkillID    string `json:"skill_id"`
	UserEmail  string `json:"user_email"`
	SkillName  string `json:"skill_name"`
	Category   string `json:"category"`
	Experience int    `json:"experience_years"`
	Rate       string `json:"rate"`
	Available  bool   `json:"is_available"`
}

// SkillRows разворачивает каталог в строки таблицы навыков.
func SkillRows(professionals []Professional, idx CategoryIndex) []SkillRow {
	rows := make([]SkillRow, 0)
	for _, p := range professionals {
		for _, s := range p.Skills {
			rows = append(rows, SkillRow{
				SkillID:    s.ID.String(),
				UserEmail:  p.User.Email,
				SkillName:  s.SkillName,
				Category:   idx.Label(s),
				Experience: s.ExperienceYears,
				Rate:       models.FormatRate(s.HourlyRate, s.Currency),
				Available:  s.IsAvailable,
			})
		}
	}
	return rows
}
