// Package directory собирает каталог специалистов из бэкенда, у которого нет
// объединённого эндпоинта: пользователи × навыки × категории склеиваются в памяти.
package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/skill-connector/internal/models"
)

// UnknownCategory показывается, когда категория навыка не найдена.
const UnknownCategory = "Unknown"

// Fetcher — то, что агрегатору нужно от бэкенда.
type Fetcher interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]models.Skill, error)
}

// Professional — пользователь вместе с его навыками.
type Professional struct {
	User   models.User    `json:"user"`
	Skills []models.Skill `json:"skills"`
}

// FetchFailure — не удалось загрузить навыки одного пользователя.
type FetchFailure struct {
	UserID uuid.UUID
	Err    error
}

// Result — итог агрегации. Professionals идут в порядке списка пользователей.
type Result struct {
	Professionals []Professional
	Failures      []FetchFailure
}

// Partial сообщает, что часть навыков не загрузилась.
func (r *Result) Partial() bool {
	return len(r.Failures) > 0
}

// CategoryIndex — поиск названия категории по id.
type CategoryIndex map[uuid.UUID]string

// NewCategoryIndex строит индекс из списка категорий.
func NewCategoryIndex(categories []models.Category) CategoryIndex {
	idx := make(CategoryIndex, len(categories))
	for _, c := range categories {
		idx[c.ID] = c.Name
	}
	return idx
}

// Label возвращает название категории навыка или "Unknown".
func (idx CategoryIndex) Label(skill models.Skill) string {
	if skill.CategoryName != "" {
		return skill.CategoryName
	}
	if name, ok := idx[skill.CategoryID]; ok {
		return name
	}
	return UnknownCategory
}

// CategoryNames возвращает названия категорий в исходном порядке (для фильтра).
func CategoryNames(categories []models.Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}
