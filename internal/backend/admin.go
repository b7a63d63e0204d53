package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/ignatzorin/skill-connector/internal/models"
)

// AdminLogin выполняет вход администратора.
func (c *Client) AdminLogin(ctx context.Context, req models.LoginRequest) (*models.AdminAuthResult, error) {
	var out models.AdminAuthResult
	if err := c.post(ctx, "/admin/login", "/admin/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminMe возвращает администратора по токену.
func (c *Client) AdminMe(ctx context.Context, token string) (*models.Admin, error) {
	var out models.Admin
	if err := c.get(ctx, "/admin/me", "/admin/me", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminStats возвращает сводку платформы.
func (c *Client) AdminStats(ctx context.Context, token string) (*models.PlatformStats, error) {
	var out models.PlatformStats
	if err := c.get(ctx, "/admin/stats", "/admin/stats", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminListUsers возвращает всех пользователей (админский вид).
func (c *Client) AdminListUsers(ctx context.Context, token string) ([]models.User, error) {
	var out []models.User
	if err := c.get(ctx, "/admin/users", "/admin/users", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminCreateUser создаёт пользователя от имени администратора.
func (c *Client) AdminCreateUser(ctx context.Context, token string, req models.UserCreateByAdmin) (*models.User, error) {
	var out models.User
	if err := c.post(ctx, "/admin/users", "/admin/users", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminDeleteUser удаляет пользователя.
func (c *Client) AdminDeleteUser(ctx context.Context, token string, userID uuid.UUID) error {
	return c.delete(ctx, "/admin/users/"+url.PathEscape(userID.String()), "/admin/users/:id", token)
}

// AdminListAdmins возвращает администраторов.
func (c *Client) AdminListAdmins(ctx context.Context, token string) ([]models.Admin, error) {
	var out []models.Admin
	if err := c.get(ctx, "/admin/admins", "/admin/admins", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminCreateAdmin создаёт администратора (на бэкенде разрешено только super_admin).
func (c *Client) AdminCreateAdmin(ctx context.Context, token string, req models.AdminCreate) (*models.Admin, error) {
	var out models.Admin
	if err := c.post(ctx, "/admin/admins", "/admin/admins", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminDeleteAdmin удаляет администратора.
func (c *Client) AdminDeleteAdmin(ctx context.Context, token string, adminID uuid.UUID) error {
	return c.delete(ctx, "/admin/admins/"+url.PathEscape(adminID.String()), "/admin/admins/:id", token)
}

// AdminActivityLogs возвращает последние записи аудита.
func (c *Client) AdminActivityLogs(ctx context.Context, token string, limit int) ([]models.ActivityLog, error) {
	path := "/admin/activity-logs"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var out []models.ActivityLog
	if err := c.get(ctx, path, "/admin/activity-logs", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}
