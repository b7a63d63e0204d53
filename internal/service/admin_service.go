package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skill-connector/internal/directory"
	"github.com/ignatzorin/skill-connector/internal/dto"
	"github.com/ignatzorin/skill-connector/internal/logger"
	"github.com/ignatzorin/skill-connector/internal/models"
	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
	"github.com/ignatzorin/skill-connector/internal/validation"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 500
)

// AdminAPI описывает зависимости админки от бэкенда.
type AdminAPI interface {
	AdminLogin(ctx context.Context, req models.LoginRequest) (*models.AdminAuthResult, error)
	AdminMe(ctx context.Context, token string) (*models.Admin, error)
	AdminStats(ctx context.Context, token string) (*models.PlatformStats, error)
	AdminListUsers(ctx context.Context, token string) ([]models.User, error)
	AdminCreateUser(ctx context.Context, token string, req models.UserCreateByAdmin) (*models.User, error)
	AdminDeleteUser(ctx context.Context, token string, userID uuid.UUID) error
	AdminListAdmins(ctx context.Context, token string) ([]models.Admin, error)
	AdminCreateAdmin(ctx context.Context, token string, req models.AdminCreate) (*models.Admin, error)
	AdminDeleteAdmin(ctx context.Context, token string, adminID uuid.UUID) error
	AdminActivityLogs(ctx context.Context, token string, limit int) ([]models.ActivityLog, error)
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]models.Skill, error)
}

// AdminService — операции панели администратора.
type AdminService struct {
	api         AdminAPI
	sessions    *SessionService
	categories  *CategoryService
	fanoutLimit int
	loc         *time.Location
	log         *logrus.Entry
}

// NewAdminService создаёт сервис.
// loc задаёт зону для времени в журнале действий.
func NewAdminService(api AdminAPI, sessions *SessionService, categories *CategoryService, fanoutLimit int, loc *time.Location) *AdminService {
	return &AdminService{
		api:         api,
		sessions:    sessions,
		categories:  categories,
		fanoutLimit: fanoutLimit,
		loc:         loc,
		log:         logger.WithComponent("admin"),
	}
}

// AdminOutcome — открытая сессия и профиль администратора.
type AdminOutcome struct {
	Opened *OpenedSession
	Admin  models.Admin
}

// Login выполняет вход администратора.
func (s *AdminService) Login(ctx context.Context, req dto.LoginRequest) (*AdminOutcome, error) {
	email := normalizeEmail(req.Email)
	if err := validationError(
		validation.ValidateEmail(email),
		validation.ValidateNonEmpty("пароль", req.Password),
	); err != nil {
		return nil, err
	}

	result, err := s.api.AdminLogin(ctx, models.LoginRequest{Email: email, Password: req.Password})
	if err != nil {
		if apperror.IsSessionExpired(err) {
			return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, apperror.ErrInvalidCredentials.Message)
		}
		return nil, err
	}
	if result.AccessToken == "" {
		return nil, apperror.New(apperror.ErrCodeUpstream, "сервис не выдал токен")
	}

	opened, err := s.sessions.Open(ctx, models.SessionKindAdmin, result.Admin.ID, result.AccessToken, result.Admin)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось открыть сессию")
	}

	s.log.WithField("admin_id", result.Admin.ID).Info("администратор вошёл")
	return &AdminOutcome{Opened: opened, Admin: result.Admin}, nil
}

// Logout закрывает сессию администратора.
func (s *AdminService) Logout(ctx context.Context, session *models.Session) error {
	return s.sessions.Close(ctx, session)
}

// Me возвращает текущего администратора, при сбое бэкенда — снимок из сессии.
func (s *AdminService) Me(ctx context.Context, session *models.Session) (*models.Admin, error) {
	admin, err := s.api.AdminMe(ctx, session.Token)
	if err != nil {
		if err := s.sessions.Expire(ctx, session, err); apperror.IsSessionExpired(err) {
			return nil, err
		}
		s.log.WithError(err).Warn("администратор из снимка сессии")
		return session.Admin()
	}

	if err := s.sessions.RefreshProfile(ctx, session, admin); err != nil {
		s.log.WithError(err).Warn("не удалось обновить снимок профиля")
	}
	return admin, nil
}

// Stats возвращает сводку платформы.
func (s *AdminService) Stats(ctx context.Context, session *models.Session) (*dto.StatsPage, error) {
	page := &dto.StatsPage{}

	stats, err := s.api.AdminStats(ctx, session.Token)
	if err != nil {
		if err := s.failOpen(ctx, session, err); err != nil {
			return nil, err
		}
		page.Add(dto.NoticeError, noticeMessage(err, "Не удалось загрузить статистику"))
	} else {
		page.Stats = *stats
	}

	page.Ensure()
	return page, nil
}

// Users возвращает таблицу пользователей.
func (s *AdminService) Users(ctx context.Context, session *models.Session) (*dto.UsersPage, error) {
	page := &dto.UsersPage{Users: []dto.AdminUserRow{}}

	users, err := s.api.AdminListUsers(ctx, session.Token)
	if err != nil {
		if err := s.failOpen(ctx, session, err); err != nil {
			return nil, err
		}
		page.Add(dto.NoticeError, noticeMessage(err, "Не удалось загрузить пользователей"))
	} else {
		page.Users = dto.NewAdminUserRows(users)
	}

	page.Ensure()
	return page, nil
}

// CreateUser создаёт пользователя и перечитывает таблицу.
func (s *AdminService) CreateUser(ctx context.Context, session *models.Session, req dto.AdminCreateUserRequest) (*dto.UsersPage, error) {
	email := normalizeEmail(req.Email)
	if err := validationError(
		validation.ValidateEmail(email),
		validation.ValidatePassword(req.Password),
		validation.ValidateFullName(req.FullName),
		validation.ValidatePhone(req.Phone),
		validation.ValidateBio(req.Bio),
		validation.ValidateCoordinates(req.Latitude, req.Longitude),
	); err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	created, err := s.api.AdminCreateUser(ctx, session.Token, models.UserCreateByAdmin{
		Email:     email,
		Password:  req.Password,
		FullName:  strings.TrimSpace(req.FullName),
		Phone:     emptyToNil(req.Phone),
		Bio:       emptyToNil(req.Bio),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		IsActive:  active,
	})
	if err != nil {
		return nil, s.sessions.Expire(ctx, session, err)
	}
	s.log.WithField("user_id", created.ID).Info("пользователь создан")

	page, err := s.Users(ctx, session)
	if err != nil {
		return nil, err
	}
	prependNotice(&page.Notices, dto.NoticeSuccess, "Пользователь создан")
	return page, nil
}

// DeleteUser удаляет пользователя и перечитывает таблицу.
func (s *AdminService) DeleteUser(ctx context.Context, session *models.Session, userID uuid.UUID) (*dto.UsersPage, error) {
	if err := s.api.AdminDeleteUser(ctx, session.Token, userID); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Wrap(err, apperror.ErrCodeNotFound, apperror.ErrUserNotFound.Message)
		}
		return nil, s.sessions.Expire(ctx, session, err)
	}
	s.log.WithField("user_id", userID).Info("пользователь удалён")

	page, err := s.Users(ctx, session)
	if err != nil {
		return nil, err
	}
	prependNotice(&page.Notices, dto.NoticeSuccess, "Пользователь удалён")
	return page, nil
}

// Admins возвращает список администраторов; управлять ими может только super_admin.
func (s *AdminService) Admins(ctx context.Context, session *models.Session) (*dto.AdminsPage, error) {
	current, err := session.Admin()
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "профиль администратора недоступен")
	}

	page := &dto.AdminsPage{Admins: []dto.AdminView{}, CanManage: current.IsSuperAdmin()}

	admins, err := s.api.AdminListAdmins(ctx, session.Token)
	if err != nil {
		if err := s.failOpen(ctx, session, err); err != nil {
			return nil, err
		}
		page.Add(dto.NoticeError, noticeMessage(err, "Не удалось загрузить администраторов"))
	} else {
		for _, a := range admins {
			page.Admins = append(page.Admins, dto.NewAdminView(a, current.ID))
		}
	}

	page.Ensure()
	return page, nil
}

// CreateAdmin создаёт администратора. Без роли super_admin запрос не уходит на бэкенд.
func (s *AdminService) CreateAdmin(ctx context.Context, session *models.Session, req dto.AdminCreateAdminRequest) (*dto.AdminsPage, error) {
	if _, err := s.requireSuperAdmin(session); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}

	email := normalizeEmail(req.Email)
	var roleErr error
	if role != models.RoleAdmin && role != models.RoleSuperAdmin {
		roleErr = errors.New("неизвестная роль администратора")
	}
	if err := validationError(
		validation.ValidateEmail(email),
		validation.ValidatePassword(req.Password),
		validation.ValidateFullName(req.FullName),
		roleErr,
	); err != nil {
		return nil, err
	}

	created, err := s.api.AdminCreateAdmin(ctx, session.Token, models.AdminCreate{
		Email:    email,
		FullName: strings.TrimSpace(req.FullName),
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return nil, s.sessions.Expire(ctx, session, err)
	}
	s.log.WithFields(logrus.Fields{"admin_id": created.ID, "role": role}).Info("администратор создан")

	page, err := s.Admins(ctx, session)
	if err != nil {
		return nil, err
	}
	prependNotice(&page.Notices, dto.NoticeSuccess, "Администратор создан")
	return page, nil
}

// DeleteAdmin удаляет администратора. Удалить самого себя нельзя.
func (s *AdminService) DeleteAdmin(ctx context.Context, session *models.Session, adminID uuid.UUID) (*dto.AdminsPage, error) {
	current, err := s.requireSuperAdmin(session)
	if err != nil {
		return nil, err
	}
	if current.ID == adminID {
		return nil, apperror.New(apperror.ErrCodeBadRequest, "нельзя удалить собственную учётную запись")
	}

	if err := s.api.AdminDeleteAdmin(ctx, session.Token, adminID); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Wrap(err, apperror.ErrCodeNotFound, "администратор не найден")
		}
		return nil, s.sessions.Expire(ctx, session, err)
	}
	s.log.WithField("admin_id", adminID).Info("администратор удалён")

	page, err := s.Admins(ctx, session)
	if err != nil {
		return nil, err
	}
	prependNotice(&page.Notices, dto.NoticeSuccess, "Администратор удалён")
	return page, nil
}

// Skills собирает таблицу всех навыков: пользователи × навыки × категории.
func (s *AdminService) Skills(ctx context.Context, session *models.Session) (*dto.SkillsPage, error) {
	page := &dto.SkillsPage{Rows: []directory.SkillRow{}}

	var idx directory.CategoryIndex
	if categories, err := s.categories.List(ctx); err != nil {
		page.Add(dto.NoticeWarning, noticeMessage(err, "Не удалось загрузить категории"))
	} else {
		idx = directory.NewCategoryIndex(categories)
	}

	result, err := directory.Aggregate(ctx, adminFetcher{api: s.api, token: session.Token}, directory.Options{
		FanoutLimit: s.fanoutLimit,
		Categories:  idx,
	})
	if err != nil {
		if err := s.failOpen(ctx, session, err); err != nil {
			return nil, err
		}
		page.Add(dto.NoticeError, noticeMessage(err, "Не удалось загрузить навыки"))
		page.Ensure()
		return page, nil
	}

	if result.Partial() {
		page.Add(dto.NoticeWarning, partialNotice(len(result.Failures)))
	}
	page.Rows = directory.SkillRows(result.Professionals, idx)
	page.Ensure()
	return page, nil
}

// Categories возвращает категории, минуя кэш: админ должен видеть актуальный список.
func (s *AdminService) Categories(ctx context.Context) (*dto.CategoriesPage, error) {
	page := &dto.CategoriesPage{Categories: []dto.CategoryOption{}}

	s.categories.Invalidate(ctx)
	categories, err := s.categories.List(ctx)
	if err != nil {
		if cancelled(ctx) {
			return nil, ctx.Err()
		}
		page.Add(dto.NoticeError, noticeMessage(err, "Не удалось загрузить категории"))
	} else {
		page.Categories = dto.NewCategoryOptions(categories)
	}

	page.Ensure()
	return page, nil
}

// ActivityLogs возвращает последние записи журнала действий.
func (s *AdminService) ActivityLogs(ctx context.Context, session *models.Session, limit int) (*dto.ActivityPage, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	limit = min(limit, MaxActivityLimit)

	page := &dto.ActivityPage{Logs: []dto.ActivityRow{}}

	logs, err := s.api.AdminActivityLogs(ctx, session.Token, limit)
	if err != nil {
		if err := s.failOpen(ctx, session, err); err != nil {
			return nil, err
		}
		page.Add(dto.NoticeError, noticeMessage(err, "Не удалось загрузить журнал"))
	} else {
		page.Logs = dto.NewActivityRows(logs, s.loc)
	}

	page.Ensure()
	return page, nil
}

// failOpen решает, можно ли показать страницу с notice вместо ошибки.
// Истёкшая сессия и ушедший клиент обрывают запрос.
func (s *AdminService) failOpen(ctx context.Context, session *models.Session, err error) error {
	if err := s.sessions.Expire(ctx, session, err); apperror.IsSessionExpired(err) {
		return err
	}
	if cancelled(ctx) {
		return ctx.Err()
	}
	s.log.WithError(err).Warn("раздел админки загружен с ошибкой")
	return nil
}

func (s *AdminService) requireSuperAdmin(session *models.Session) (*models.Admin, error) {
	current, err := session.Admin()
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "профиль администратора недоступен")
	}
	if !current.IsSuperAdmin() {
		return nil, apperror.ErrSuperAdminOnly
	}
	return current, nil
}

// adminFetcher отдаёт directory.Aggregate админский список пользователей.
type adminFetcher struct {
	api   AdminAPI
	token string
}

func (f adminFetcher) ListUsers(ctx context.Context) ([]models.User, error) {
	return f.api.AdminListUsers(ctx, f.token)
}

func (f adminFetcher) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]models.Skill, error) {
	return f.api.ListUserSkills(ctx, userID)
}
