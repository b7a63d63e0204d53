package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Роли администраторов.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Admin — учётная запись администратора.
type Admin struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *Timestamp `json:"last_login,omitempty"`
	CreatedAt Timestamp  `json:"created_at"`
}

// IsSuperAdmin сообщает, может ли администратор управлять другими администраторами.
func (a *Admin) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

// AdminAuthResult — ответ /admin/login.
type AdminAuthResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Admin       Admin  `json:"admin"`
}

// AdminCreate — тело POST /admin/admins.
type AdminCreate struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserCreateByAdmin — тело POST /admin/users.
type UserCreateByAdmin struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	FullName  string   `json:"full_name"`
	Phone     *string  `json:"phone"`
	Bio       *string  `json:"bio"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	IsActive  bool     `json:"is_active"`
}

// ActivityLog — запись аудита действий администратора.
type ActivityLog struct {
	ID         uuid.UUID       `json:"id"`
	AdminID    uuid.UUID       `json:"admin_id"`
	Action     string          `json:"action"`
	TargetType string          `json:"target_type"`
	TargetID   *string         `json:"target_id,omitempty"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  Timestamp       `json:"created_at"`
}

// PlatformStats — сводка для админки.
type PlatformStats struct {
	TotalUsers     int    `json:"total_users"`
	ActiveUsers    int    `json:"active_users"`
	TotalSkills    int    `json:"total_skills"`
	TotalAdmins    int    `json:"total_admins"`
	PlatformStatus string `json:"platform_status,omitempty"`
}
