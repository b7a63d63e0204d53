package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skill-connector/internal/models"
	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
	"github.com/ignatzorin/skill-connector/internal/repository"
)

const (
	validToken   = "valid-token"
	expiredToken = "expired-token"
)

var errBackend401 = apperror.New(apperror.ErrCodeSessionExpired, apperror.ErrSessionExpired.Message)

// fakeBackend реализует все интерфейсы API сервисов поверх map.
type fakeBackend struct {
	mu sync.Mutex

	users      []models.User
	skills     map[uuid.UUID][]models.Skill
	categories []models.Category
	me         models.User

	conversations []models.ConversationSummary
	threads       map[uuid.UUID]models.ConversationThread
	sent          []models.SendMessageRequest

	admins     []models.Admin
	activity   []models.ActivityLog
	stats      models.PlatformStats
	adminLogin *models.AdminAuthResult

	// errs задаёт ошибку по имени метода.
	errs map[string]error
	// skillErrs задаёт ошибку загрузки навыков конкретного пользователя.
	skillErrs map[uuid.UUID]error
	calls     map[string]int

	lastActivityLimit int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		skills:    make(map[uuid.UUID][]models.Skill),
		threads:   make(map[uuid.UUID]models.ConversationThread),
		errs:      make(map[string]error),
		skillErrs: make(map[uuid.UUID]error),
		calls:     make(map[string]int),
	}
}

func (f *fakeBackend) call(name, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	if token == expiredToken {
		return errBackend401
	}
	return f.errs[name]
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResult, error) {
	if err := f.call("Signup", ""); err != nil {
		return nil, err
	}
	user := models.User{ID: uuid.New(), Email: req.Email, FullName: req.FullName, IsActive: true}
	return &models.AuthResult{AccessToken: validToken, TokenType: "bearer", User: user}, nil
}

func (f *fakeBackend) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	if err := f.call("Login", ""); err != nil {
		return nil, err
	}
	return &models.AuthResult{AccessToken: validToken, TokenType: "bearer", User: f.me}, nil
}

func (f *fakeBackend) GetMe(ctx context.Context, token string) (*models.User, error) {
	if err := f.call("GetMe", token); err != nil {
		return nil, err
	}
	me := f.me
	return &me, nil
}

func (f *fakeBackend) UpdateMe(ctx context.Context, token string, update models.ProfileUpdate) (*models.User, error) {
	if err := f.call("UpdateMe", token); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if update.FullName != nil {
		f.me.FullName = *update.FullName
	}
	if update.Phone != nil {
		f.me.Phone = update.Phone
	}
	if update.Bio != nil {
		f.me.Bio = update.Bio
	}
	if update.Latitude != nil {
		f.me.Latitude, f.me.Longitude = update.Latitude, update.Longitude
	}
	me := f.me
	return &me, nil
}

func (f *fakeBackend) ListUsers(ctx context.Context) ([]models.User, error) {
	if err := f.call("ListUsers", ""); err != nil {
		return nil, err
	}
	return f.users, nil
}

func (f *fakeBackend) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if err := f.call("GetUser", ""); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, apperror.New(apperror.ErrCodeNotFound, "User not found")
}

func (f *fakeBackend) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]models.Skill, error) {
	if err := f.call("ListUserSkills", ""); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.skillErrs[userID]; err != nil {
		return nil, err
	}
	return f.skills[userID], nil
}

func (f *fakeBackend) ListCategories(ctx context.Context) ([]models.Category, error) {
	if err := f.call("ListCategories", ""); err != nil {
		return nil, err
	}
	return f.categories, nil
}

func (f *fakeBackend) CreateSkill(ctx context.Context, token string, skill models.SkillCreate) (*models.Skill, error) {
	if err := f.call("CreateSkill", token); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	created := models.Skill{
		ID:              uuid.New(),
		UserID:          f.me.ID,
		CategoryID:      skill.CategoryID,
		SkillName:       skill.SkillName,
		Description:     skill.Description,
		ExperienceYears: skill.ExperienceYears,
		Currency:        skill.Currency,
		IsAvailable:     skill.IsAvailable,
	}
	f.skills[f.me.ID] = append(f.skills[f.me.ID], created)
	return &created, nil
}

func (f *fakeBackend) DeleteSkill(ctx context.Context, token string, skillID uuid.UUID) error {
	if err := f.call("DeleteSkill", token); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	own := f.skills[f.me.ID]
	for i, s := range own {
		if s.ID == skillID {
			f.skills[f.me.ID] = append(own[:i:i], own[i+1:]...)
			return nil
		}
	}
	return apperror.New(apperror.ErrCodeNotFound, "Skill not found")
}

func (f *fakeBackend) ListConversations(ctx context.Context, token string) ([]models.ConversationSummary, error) {
	if err := f.call("ListConversations", token); err != nil {
		return nil, err
	}
	return f.conversations, nil
}

func (f *fakeBackend) GetConversation(ctx context.Context, token string, partnerID uuid.UUID) (*models.ConversationThread, error) {
	if err := f.call("GetConversation", token); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	thread := f.threads[partnerID]
	return &thread, nil
}

func (f *fakeBackend) SendMessage(ctx context.Context, token string, req models.SendMessageRequest) (*models.Message, error) {
	if err := f.call("SendMessage", token); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, req)
	msg := models.Message{
		ID:         uuid.New(),
		SenderID:   f.me.ID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
		CreatedAt:  models.Timestamp{Time: time.Now()},
	}
	thread := f.threads[req.ReceiverID]
	thread.Messages = append(thread.Messages, msg)
	f.threads[req.ReceiverID] = thread
	return &msg, nil
}

func (f *fakeBackend) AdminLogin(ctx context.Context, req models.LoginRequest) (*models.AdminAuthResult, error) {
	if err := f.call("AdminLogin", ""); err != nil {
		return nil, err
	}
	return f.adminLogin, nil
}

func (f *fakeBackend) AdminMe(ctx context.Context, token string) (*models.Admin, error) {
	if err := f.call("AdminMe", token); err != nil {
		return nil, err
	}
	a := f.adminLogin.Admin
	return &a, nil
}

func (f *fakeBackend) AdminStats(ctx context.Context, token string) (*models.PlatformStats, error) {
	if err := f.call("AdminStats", token); err != nil {
		return nil, err
	}
	stats := f.stats
	return &stats, nil
}

func (f *fakeBackend) AdminListUsers(ctx context.Context, token string) ([]models.User, error) {
	if err := f.call("AdminListUsers", token); err != nil {
		return nil, err
	}
	return f.users, nil
}

func (f *fakeBackend) AdminCreateUser(ctx context.Context, token string, req models.UserCreateByAdmin) (*models.User, error) {
	if err := f.call("AdminCreateUser", token); err != nil {
		return nil, err
	}
	u := models.User{ID: uuid.New(), Email: req.Email, FullName: req.FullName, IsActive: req.IsActive}
	f.users = append(f.users, u)
	return &u, nil
}

func (f *fakeBackend) AdminDeleteUser(ctx context.Context, token string, userID uuid.UUID) error {
	if err := f.call("AdminDeleteUser", token); err != nil {
		return err
	}
	for i, u := range f.users {
		if u.ID == userID {
			f.users = append(f.users[:i:i], f.users[i+1:]...)
			return nil
		}
	}
	return apperror.New(apperror.ErrCodeNotFound, "User not found")
}

func (f *fakeBackend) AdminListAdmins(ctx context.Context, token string) ([]models.Admin, error) {
	if err := f.call("AdminListAdmins", token); err != nil {
		return nil, err
	}
	return f.admins, nil
}

func (f *fakeBackend) AdminCreateAdmin(ctx context.Context, token string, req models.AdminCreate) (*models.Admin, error) {
	if err := f.call("AdminCreateAdmin", token); err != nil {
		return nil, err
	}
	a := models.Admin{ID: uuid.New(), Email: req.Email, FullName: req.FullName, Role: req.Role, IsActive: true}
	f.admins = append(f.admins, a)
	return &a, nil
}

func (f *fakeBackend) AdminDeleteAdmin(ctx context.Context, token string, adminID uuid.UUID) error {
	if err := f.call("AdminDeleteAdmin", token); err != nil {
		return err
	}
	for i, a := range f.admins {
		if a.ID == adminID {
			f.admins = append(f.admins[:i:i], f.admins[i+1:]...)
			return nil
		}
	}
	return apperror.New(apperror.ErrCodeNotFound, "Admin not found")
}

func (f *fakeBackend) AdminActivityLogs(ctx context.Context, token string, limit int) ([]models.ActivityLog, error) {
	if err := f.call("AdminActivityLogs", token); err != nil {
		return nil, err
	}
	f.lastActivityLimit = limit
	return f.activity, nil
}

// mockCategoryAPI — мок testify для проверки обращений к бэкенду за категориями.
type mockCategoryAPI struct {
	mock.Mock
}

func (m *mockCategoryAPI) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

const testSecret = "test-session-secret-0123456789abcdef"

func newTestSessions() (*SessionService, *repository.MemorySessionStore) {
	store := repository.NewMemorySessionStore()
	return NewSessionService(store, NewSessionTokens(testSecret), time.Hour), store
}

// openUserSession открывает сессию пользователя с заданным токеном бэкенда.
func openUserSession(t *testing.T, sessions *SessionService, user models.User, token string) *models.Session {
	t.Helper()
	opened, err := sessions.Open(context.Background(), models.SessionKindUser, user.ID, token, user)
	require.NoError(t, err)
	return opened.Session
}

func openAdminSession(t *testing.T, sessions *SessionService, admin models.Admin, token string) *models.Session {
	t.Helper()
	opened, err := sessions.Open(context.Background(), models.SessionKindAdmin, admin.ID, token, admin)
	require.NoError(t, err)
	return opened.Session
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func category(name string) models.Category {
	return models.Category{ID: uuid.New(), Name: name}
}

func skill(userID uuid.UUID, c models.Category, name string, years int) models.Skill {
	return models.Skill{
		ID:              uuid.New(),
		UserID:          userID,
		CategoryID:      c.ID,
		SkillName:       name,
		ExperienceYears: years,
		Currency:        "USD",
		IsAvailable:     true,
	}
}
