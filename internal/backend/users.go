package backend

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/ignatzorin/skill-connector/internal/models"
)

// Signup регистрирует пользователя и возвращает токен.
func (c *Client) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResult, error) {
	var out models.AuthResult
	if err := c.post(ctx, "/auth/signup", "/auth/signup", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login выполняет вход пользователя.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	var out models.AuthResult
	if err := c.post(ctx, "/auth/login", "/auth/login", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers возвращает публичный список пользователей.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.get(ctx, "/users/", "/users/", "", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser возвращает публичный профиль пользователя.
func (c *Client) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, "/users/"+url.PathEscape(id.String()), "/users/:id", "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMe возвращает профиль владельца токена.
func (c *Client) GetMe(ctx context.Context, token string) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, "/profile/me", "/profile/me", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMe частично обновляет профиль и возвращает его новую версию.
func (c *Client) UpdateMe(ctx context.Context, token string, update models.ProfileUpdate) (*models.User, error) {
	var out models.User
	if err := c.put(ctx, "/profile/me", "/profile/me", token, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health проверяет, что бэкенд отвечает.
func (c *Client) Health(ctx context.Context) (string, error) {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/", "/", "", &out); err != nil {
		return "", err
	}
	return out.Status, nil
}
