package dto

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/skill-connector/internal/chat"
	"github.com/ignatzorin/skill-connector/internal/directory"
	"github.com/ignatzorin/skill-connector/internal/models"
)

const (
	memberSinceLayout = "January 2006"
	joinedLayout      = "Jan 2, 2006"
	timestampLayout   = "Jan 2, 2006 3:04 PM"

	cardSkillLimit = 3
)

// UserView is the render-ready user profile.
type UserView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Initial     string    `json:"initial"`
	Phone       *string   `json:"phone"`
	Bio         *string   `json:"bio"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	HasLocation bool      `json:"has_location"`
	IsActive    bool      `json:"is_active"`
	MemberSince string    `json:"member_since"`
}

// NewUserView builds a UserView.
func NewUserView(u models.User) UserView {
	return UserView{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Initial:     chat.Initial(u.FullName),
		Phone:       u.Phone,
		Bio:         u.Bio,
		Latitude:    u.Latitude,
		Longitude:   u.Longitude,
		HasLocation: u.HasLocation(),
		IsActive:    u.IsActive,
		MemberSince: formatTime(u.CreatedAt.Time, memberSinceLayout),
	}
}

// SkillView is one skill as shown on a profile or the dashboard.
type SkillView struct {
	ID              uuid.UUID `json:"id"`
	SkillName       string    `json:"skill_name"`
	CategoryName    string    `json:"category_name"`
	Description     string    `json:"description"`
	ExperienceYears int       `json:"experience_years"`
	Rate            string    `json:"rate"`
	IsAvailable     bool      `json:"is_available"`
}

// NewSkillViews builds skill views, resolving category names through idx.
func NewSkillViews(skills []models.Skill, idx directory.CategoryIndex) []SkillView {
	out := make([]SkillView, 0, len(skills))
	for _, s := range skills {
		out = append(out, SkillView{
			ID:              s.ID,
			SkillName:       s.SkillName,
			CategoryName:    idx.Label(s),
			Description:     s.DescriptionText(),
			ExperienceYears: s.ExperienceYears,
			Rate:            models.FormatRate(s.HourlyRate, s.Currency),
			IsAvailable:     s.IsAvailable,
		})
	}
	return out
}

// CategoryOption is an entry of a category dropdown or grid.
type CategoryOption struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
}

// NewCategoryOptions builds dropdown entries with the default icon and description.
func NewCategoryOptions(categories []models.Category) []CategoryOption {
	out := make([]CategoryOption, 0, len(categories))
	for _, c := range categories {
		opt := CategoryOption{ID: c.ID, Name: c.Name, Icon: "📦", Description: "No description"}
		if c.Icon != nil && *c.Icon != "" {
			opt.Icon = *c.Icon
		}
		if c.Description != nil && *c.Description != "" {
			opt.Description = *c.Description
		}
		out = append(out, opt)
	}
	return out
}

// ProfessionalCard is a browse result card.
type ProfessionalCard struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"full_name"`
	Initial    string    `json:"initial"`
	Bio        *string   `json:"bio"`
	TopSkills  []string  `json:"top_skills"`
	MoreSkills int       `json:"more_skills"`
	Rate       string    `json:"rate"`
	Experience string    `json:"experience"`
	Available  bool      `json:"available"`
	ProfileURL string    `json:"profile_url"`
	ChatURL    string    `json:"chat_url"`
}

// NewProfessionalCard builds a card. Experience shows the first skill, like the card always did.
func NewProfessionalCard(p directory.Professional) ProfessionalCard {
	top := make([]string, 0, cardSkillLimit)
	for i, s := range p.Skills {
		if i == cardSkillLimit {
			break
		}
		top = append(top, s.SkillName)
	}

	experience := 0
	if len(p.Skills) > 0 {
		experience = p.Skills[0].ExperienceYears
	}

	return ProfessionalCard{
		ID:         p.User.ID,
		FullName:   p.User.FullName,
		Initial:    chat.Initial(p.User.FullName),
		Bio:        p.User.Bio,
		TopSkills:  top,
		MoreSkills: max(len(p.Skills)-cardSkillLimit, 0),
		Rate:       directory.RateLabel(directory.AverageRate(p.Skills)),
		Experience: fmt.Sprintf("%d+ years", experience),
		Available:  directory.Available(p.Skills),
		ProfileURL: "/profile/" + p.User.ID.String(),
		ChatURL:    "/chat/" + p.User.ID.String(),
	}
}

// BrowsePage is the response of GET /api/browse.
type BrowsePage struct {
	Query         string             `json:"query"`
	Category      string             `json:"category"`
	Location      string             `json:"location"`
	Categories    []string           `json:"categories"`
	Professionals []ProfessionalCard `json:"professionals"`
	Total         int                `json:"total"`
	Notices
}

// ProfilePage is the response of GET /api/professionals/:id.
type ProfilePage struct {
	User        UserView    `json:"user"`
	Skills      []SkillView `json:"skills"`
	Rate        string      `json:"rate"`
	Experience  string      `json:"experience"`
	MemberSince string      `json:"member_since"`
	SkillCount  int         `json:"skill_count"`
	ChatURL     string      `json:"chat_url"`
	Notices
}

// DashboardPage is the response of GET /api/dashboard and of every dashboard mutation.
type DashboardPage struct {
	User         UserView         `json:"user"`
	Skills       []SkillView      `json:"skills"`
	Categories   []CategoryOption `json:"categories"`
	Completeness int              `json:"completeness"`
	Notices
}

// InboxPage is the response of GET /api/inbox.
type InboxPage struct {
	Search        string          `json:"search"`
	Conversations []chat.InboxRow `json:"conversations"`
	UnreadTotal   int             `json:"unread_total"`
	Notices
}

// ChatPage is the response of GET and POST /api/chat/:partnerId.
type ChatPage struct {
	PartnerID      uuid.UUID       `json:"partner_id"`
	PartnerName    string          `json:"partner_name"`
	PartnerInitial string          `json:"partner_initial"`
	Days           []chat.DayGroup `json:"days"`
	Notices
}

// AuthView is returned by login, signup and /me.
type AuthView struct {
	User       UserView `json:"user"`
	RedirectTo string   `json:"redirect_to,omitempty"`
}

// AdminView is the render-ready admin account.
type AdminView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	RoleLabel    string    `json:"role_label"`
	IsSuperAdmin bool      `json:"is_super_admin"`
	IsActive     bool      `json:"is_active"`
	LastLogin    string    `json:"last_login"`
	IsCurrent    bool      `json:"is_current"`
}

// NewAdminView builds an AdminView; current marks the logged in admin.
func NewAdminView(a models.Admin, current uuid.UUID) AdminView {
	roleLabel := "Admin"
	if a.IsSuperAdmin() {
		roleLabel = "Super Admin"
	}
	lastLogin := "Never"
	if a.LastLogin != nil && !a.LastLogin.IsZero() {
		lastLogin = formatTime(a.LastLogin.Time, timestampLayout)
	}
	return AdminView{
		ID:           a.ID,
		Email:        a.Email,
		FullName:     a.FullName,
		Role:         a.Role,
		RoleLabel:    roleLabel,
		IsSuperAdmin: a.IsSuperAdmin(),
		IsActive:     a.IsActive,
		LastLogin:    lastLogin,
		IsCurrent:    a.ID == current,
	}
}

// AdminAuthView is returned by the admin login and /me.
type AdminAuthView struct {
	Admin      AdminView `json:"admin"`
	RedirectTo string    `json:"redirect_to,omitempty"`
}

// StatsPage is the admin overview.
type StatsPage struct {
	Stats models.PlatformStats `json:"stats"`
	Notices
}

// AdminUserRow is a row of the admin users table.
type AdminUserRow struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	Joined       string    `json:"joined"`
	Completeness int       `json:"completeness"`
	Complete     bool      `json:"complete"`
	Status       string    `json:"status"`
}

// NewAdminUserRows builds the users table.
func NewAdminUserRows(users []models.User) []AdminUserRow {
	rows := make([]AdminUserRow, 0, len(users))
	for _, u := range users {
		phone := "Not set"
		if u.Phone != nil && *u.Phone != "" {
			phone = *u.Phone
		}
		completeness := 0
		if u.ProfileCompleteness != nil {
			completeness = *u.ProfileCompleteness
		}
		status := "Inactive"
		if u.IsActive {
			status = "Active"
		}
		rows = append(rows, AdminUserRow{
			ID:           u.ID,
			Email:        u.Email,
			FullName:     u.FullName,
			Phone:        phone,
			Joined:       formatTime(u.CreatedAt.Time, joinedLayout),
			Completeness: completeness,
			Complete:     completeness >= 80,
			Status:       status,
		})
	}
	return rows
}

// UsersPage is the admin users section.
type UsersPage struct {
	Users []AdminUserRow `json:"users"`
	Notices
}

// AdminsPage is the admin accounts section.
type AdminsPage struct {
	Admins    []AdminView `json:"admins"`
	CanManage bool        `json:"can_manage"`
	Notices
}

// SkillsPage is the admin skills table.
type SkillsPage struct {
	Rows []directory.SkillRow `json:"rows"`
	Notices
}

// CategoriesPage is the admin categories grid.
type CategoriesPage struct {
	Categories []CategoryOption `json:"categories"`
	Notices
}

// ActivityRow is a row of the admin activity log.
type ActivityRow struct {
	AdminID    uuid.UUID `json:"admin_id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	Details    string    `json:"details"`
	When       string    `json:"when"`
}

const activityDetailsLimit = 50

// NewActivityRows builds the activity table; details are cut to 50 characters.
func NewActivityRows(logs []models.ActivityLog, loc *time.Location) []ActivityRow {
	rows := make([]ActivityRow, 0, len(logs))
	for _, l := range logs {
		details := "N/A"
		if len(l.Details) > 0 && string(l.Details) != "null" {
			details = string(l.Details)
			if r := []rune(details); len(r) > activityDetailsLimit {
				details = string(r[:activityDetailsLimit]) + "..."
			}
		}
		when := l.CreatedAt.Time
		if loc != nil {
			when = when.In(loc)
		}
		rows = append(rows, ActivityRow{
			AdminID:    l.AdminID,
			Action:     l.Action,
			TargetType: l.TargetType,
			Details:    details,
			When:       formatTime(when, timestampLayout),
		})
	}
	return rows
}

// ActivityPage is the admin activity log.
type ActivityPage struct {
	Logs []ActivityRow `json:"logs"`
	Notices
}

func formatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layout)
}
