package dto

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Email           string   `json:"email" binding:"required,email"`
	Password        string   `json:"password" binding:"required,min=8,max=72"`
	ConfirmPassword string   `json:"confirm_password" binding:"required,eqfield=Password"`
	FullName        string   `json:"full_name" binding:"required,notblank,min=2,max=100"`
	Phone           *string  `json:"phone" binding:"omitempty,max=20"`
	Bio             *string  `json:"bio" binding:"omitempty,max=500"`
	Latitude        *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" binding:"omitempty,longitude"`
}

// LoginRequest is used by both the user and the admin login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the editable profile fields; nil fields are left as is.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Bio      *string `json:"bio" binding:"omitempty,max=500"`
}

// UpdateLocationRequest sets both coordinates at once.
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,latitude"`
	Longitude *float64 `json:"longitude" binding:"required,longitude"`
}

// AddSkillRequest is the body of POST /api/dashboard/skills.
type AddSkillRequest struct {
	CategoryID      string   `json:"category_id" binding:"required,uuid"`
	SkillName       string   `json:"skill_name" binding:"required,notblank,min=2,max=100"`
	Description     *string  `json:"description" binding:"omitempty,max=500"`
	ExperienceYears int      `json:"experience_years" binding:"gte=0,lte=50"`
	HourlyRate      *float64 `json:"hourly_rate" binding:"omitempty,gte=0,lte=10000"`
	Currency        string   `json:"currency" binding:"omitempty,currency"`
	IsAvailable     *bool    `json:"is_available"`
}

// SendMessageRequest is the body of POST /api/chat/:partnerId.
type SendMessageRequest struct {
	Message string `json:"message" binding:"required,notblank,max=5000"`
}

// AdminCreateUserRequest is the body of POST /admin/api/users.
type AdminCreateUserRequest struct {
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=8,max=72"`
	FullName  string   `json:"full_name" binding:"required,notblank,min=2,max=100"`
	Phone     *string  `json:"phone" binding:"omitempty,max=20"`
	Bio       *string  `json:"bio" binding:"omitempty,max=500"`
	Latitude  *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" binding:"omitempty,longitude"`
	IsActive  *bool    `json:"is_active"`
}

// AdminCreateAdminRequest is the body of POST /admin/api/admins.
type AdminCreateAdminRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required,notblank,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"omitempty,oneof=admin super_admin"`
}
