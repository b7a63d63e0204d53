package directory

import "strings"

// CategoryAll отключает фильтр по категории.
const CategoryAll = "all"

// Query — параметры поиска на странице каталога.
type Query struct {
	Text     string
	Category string
	// Location принимается, но в сопоставлении не участвует: поиск по расстоянию не реализован.
	Location string
}

// Filter оставляет специалистов, подходящих под запрос, сохраняя порядок.
//
// Специалист подходит, если у него есть хотя бы один навык, текст запроса
// (без пробелов по краям, без учёта регистра) пуст или встречается в имени,
// названии или описании навыка, а категория равна "all", пуста или в точности
// совпадает с категорией одного из навыков.
func Filter(professionals []Professional, q Query) []Professional {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	category := q.Category

	out := make([]Professional, 0, len(professionals))
	for _, p := range professionals {
		if Matches(p, text, category) {
			out = append(out, p)
		}
	}
	return out
}

// Matches — предикат Filter. text должен быть уже нормализован.
func Matches(p Professional, text, category string) bool {
	if len(p.Skills) == 0 {
		return false
	}
	return matchesText(p, text) && matchesCategory(p, category)
}

func matchesText(p Professional, text string) bool {
	if text == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.User.FullName), text) {
		return true
	}
	for _, s := range p.Skills {
		if strings.Contains(strings.ToLower(s.SkillName), text) ||
			strings.Contains(strings.ToLower(s.DescriptionText()), text) {
			return true
		}
	}
	return false
}

func matchesCategory(p Professional, category string) bool {
	if category == "" || category == CategoryAll {
		return true
	}
	for _, s := range p.Skills {
		if s.CategoryName == category {
			return true
		}
	}
	return false
}
