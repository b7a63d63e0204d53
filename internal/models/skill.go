package models

import "github.com/google/uuid"

// DefaultCurrency используется, когда валюта ставки не указана.
const DefaultCurrency = "USD"

// Category группирует навыки.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
}

// Skill принадлежит ровно одному пользователю и одной категории.
type Skill struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	CategoryID      uuid.UUID `json:"category_id"`
	CategoryName    string    `json:"category_name,omitempty"`
	SkillName       string    `json:"skill_name"`
	Description     *string   `json:"description,omitempty"`
	ExperienceYears int       `json:"experience_years"`
	HourlyRate      *Amount   `json:"hourly_rate,omitempty"`
	Currency        string    `json:"currency"`
	IsAvailable     bool      `json:"is_available"`
	CreatedAt       Timestamp `json:"created_at"`
	UpdatedAt       Timestamp `json:"updated_at"`
}

// DescriptionText возвращает описание или пустую строку.
func (s *Skill) DescriptionText() string {
	if s.Description == nil {
		return ""
	}
	return *s.Description
}

// SkillCreate — тело POST /skills/.
type SkillCreate struct {
	CategoryID      uuid.UUID `json:"category_id"`
	SkillName       string    `json:"skill_name"`
	Description     *string   `json:"description"`
	ExperienceYears int       `json:"experience_years"`
	HourlyRate      *float64  `json:"hourly_rate"`
	Currency        string    `json:"currency"`
	IsAvailable     bool      `json:"is_available"`
}
