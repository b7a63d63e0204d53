package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

// Виды сессий.
const (
	SessionKindUser  = "user"
	SessionKindAdmin = "admin"
)

// Session хранит токен бэкенда и снимок профиля на стороне портала.
// В браузер уходит только подписанный идентификатор сессии.
type Session struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	Kind      string         `db:"kind" json:"kind"`
	SubjectID uuid.UUID      `db:"subject_id" json:"subject_id"`
	Token     string         `db:"token" json:"-"`
	Profile   types.JSONText `db:"profile" json:"profile"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	ExpiresAt time.Time      `db:"expires_at" json:"expires_at"`
}

// Expired сообщает, истекла ли сессия к моменту now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// User декодирует снимок профиля пользователя.
func (s *Session) User() (*User, error) {
	if s.Kind != SessionKindUser {
		return nil, fmt.Errorf("models: сессия %s не пользовательская", s.ID)
	}
	var u User
	if err := json.Unmarshal(s.Profile, &u); err != nil {
		return nil, fmt.Errorf("models: профиль сессии %s: %w", s.ID, err)
	}
	return &u, nil
}

// Admin декодирует снимок профиля администратора.
func (s *Session) Admin() (*Admin, error) {
	if s.Kind != SessionKindAdmin {
		return nil, fmt.Errorf("models: сессия %s не администраторская", s.ID)
	}
	var a Admin
	if err := json.Unmarshal(s.Profile, &a); err != nil {
		return nil, fmt.Errorf("models: профиль сессии %s: %w", s.ID, err)
	}
	return &a, nil
}

// SetProfile сериализует профиль в снимок сессии.
func (s *Session) SetProfile(profile any) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("models: сериализация профиля: %w", err)
	}
	s.Profile = types.JSONText(raw)
	return nil
}
