package models

import "github.com/google/uuid"

// User описывает пользователя маркетплейса в том виде, в каком его отдаёт бэкенд.
// Профессионал — это пользователь, у которого опубликован хотя бы один навык.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Phone          *string   `json:"phone,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	ProfilePicture *string   `json:"profile_picture,omitempty"`
	// ProfileCompleteness считает бэкенд; в админских списках он приходит готовым.
	ProfileCompleteness *int      `json:"profile_completeness,omitempty"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           Timestamp `json:"created_at"`
}

// HasLocation сообщает, что обе координаты заданы и не нулевые.
func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil && *u.Latitude != 0 && *u.Longitude != 0
}

// AuthResult — ответ /auth/signup и /auth/login.
type AuthResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// SignupRequest — данные регистрации.
type SignupRequest struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	FullName  string   `json:"full_name"`
	Phone     *string  `json:"phone"`
	Bio       *string  `json:"bio"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// LoginRequest — учётные данные пользователя или администратора.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate — частичное обновление /profile/me, пустые поля не отправляются.
type ProfileUpdate struct {
	FullName  *string  `json:"full_name,omitempty"`
	Bio       *string  `json:"bio,omitempty"`
	Phone     *string  `json:"phone,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
