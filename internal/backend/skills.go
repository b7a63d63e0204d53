package backend

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/ignatzorin/skill-connector/internal/models"
)

// ListCategories возвращает все категории навыков.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.get(ctx, "/skills/categories", "/skills/categories", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUserSkills возвращает навыки пользователя.
func (c *Client) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]models.Skill, error) {
	var out []models.Skill
	if err := c.get(ctx, "/skills/user/"+url.PathEscape(userID.String()), "/skills/user/:id", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSkill добавляет навык владельцу токена.
func (c *Client) CreateSkill(ctx context.Context, token string, skill models.SkillCreate) (*models.Skill, error) {
	var out models.Skill
	if err := c.post(ctx, "/skills/", "/skills/", token, skill, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSkill удаляет навык владельца токена.
func (c *Client) DeleteSkill(ctx context.Context, token string, skillID uuid.UUID) error {
	return c.delete(ctx, "/skills/"+url.PathEscape(skillID.String()), "/skills/:id", token)
}
