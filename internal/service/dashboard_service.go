package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/skill-connector/internal/directory"
	"github.com/ignatzorin/skill-connector/internal/dto"
	"github.com/ignatzorin/skill-connector/internal/logger"
	"github.com/ignatzorin/skill-connector/internal/models"
	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
	"github.com/ignatzorin/skill-connector/internal/validation"
)

// DashboardAPI описывает зависимости личного кабинета от бэкенда.
type DashboardAPI interface {
	GetMe(ctx context.Context, token string) (*models.User, error)
	UpdateMe(ctx context.Context, token string, update models.ProfileUpdate) (*models.User, error)
	ListUserSkills(ctx context.Context, userID uuid.UUID) ([]models.Skill, error)
	CreateSkill(ctx context.Context, token string, skill models.SkillCreate) (*models.Skill, error)
	DeleteSkill(ctx context.Context, token string, skillID uuid.UUID) error
}

// DashboardService — профиль и навыки владельца сессии.
type DashboardService struct {
	api        DashboardAPI
	categories *CategoryService
	sessions   *SessionService
}

// NewDashboardService создаёт сервис.
func NewDashboardService(api DashboardAPI, categories *CategoryService, sessions *SessionService) *DashboardService {
	return &DashboardService{api: api, categories: categories, sessions: sessions}
}

// Dashboard собирает кабинет. Если профиль не загрузился, показывается снимок из сессии.
func (s *DashboardService) Dashboard(ctx context.Context, session *models.Session) (*dto.DashboardPage, error) {
	page := &dto.DashboardPage{
		Skills:     []dto.SkillView{},
		Categories: []dto.CategoryOption{},
	}
	log := logger.WithComponent("dashboard").WithField("session_id", session.ID)

	user, err := s.api.GetMe(ctx, session.Token)
	if err != nil {
		if err := s.sessions.Expire(ctx, session, err); apperror.IsSessionExpired(err) || cancelled(ctx) {
			return nil, err
		}
		log.WithError(err).Warn("профиль не загружен, используется снимок")
		page.Add(dto.NoticeWarning, noticeMessage(err, "Не удалось обновить профиль"))

		user, err = session.User()
		if err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "профиль недоступен")
		}
	} else if err := s.sessions.RefreshProfile(ctx, session, user); err != nil {
		log.WithError(err).Warn("не удалось обновить снимок профиля")
	}

	var idx directory.CategoryIndex
	categories, err := s.categories.List(ctx)
	if err != nil {
		page.Add(dto.NoticeWarning, noticeMessage(err, "Не удалось загрузить категории"))
	} else {
		idx = directory.NewCategoryIndex(categories)
		page.Categories = dto.NewCategoryOptions(categories)
	}

	skills, err := s.api.ListUserSkills(ctx, user.ID)
	if err != nil {
		if cancelled(ctx) {
			return nil, ctx.Err()
		}
		page.Add(dto.NoticeWarning, noticeMessage(err, "Не удалось загрузить навыки"))
		skills = nil
	}

	page.User = dto.NewUserView(*user)
	page.Skills = dto.NewSkillViews(skills, idx)
	page.Completeness = directory.Completeness(*user, skills)
	page.Ensure()

	return page, nil
}

// UpdateProfile меняет имя, телефон и описание.
func (s *DashboardService) UpdateProfile(ctx context.Context, session *models.Session, req dto.UpdateProfileRequest) (*dto.DashboardPage, error) {
	update := models.ProfileUpdate{
		FullName: emptyToNil(req.FullName),
		Phone:    trimPtr(req.Phone),
		Bio:      trimPtr(req.Bio),
	}

	var nameErr error
	if req.FullName != nil {
		nameErr = validation.ValidateFullName(*req.FullName)
	}
	if err := validationError(
		nameErr,
		validation.ValidatePhone(update.Phone),
		validation.ValidateBio(update.Bio),
	); err != nil {
		return nil, err
	}

	return s.applyUpdate(ctx, session, update, "Профиль обновлён")
}

// UpdateLocation сохраняет координаты.
func (s *DashboardService) UpdateLocation(ctx context.Context, session *models.Session, req dto.UpdateLocationRequest) (*dto.DashboardPage, error) {
	if req.Latitude == nil || req.Longitude == nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "нужно указать и широту, и долготу")
	}
	if err := validationError(validation.ValidateCoordinates(req.Latitude, req.Longitude)); err != nil {
		return nil, err
	}

	return s.applyUpdate(ctx, session, models.ProfileUpdate{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}, "Местоположение сохранено")
}

func (s *DashboardService) applyUpdate(ctx context.Context, session *models.Session, update models.ProfileUpdate, done string) (*dto.DashboardPage, error) {
	user, err := s.api.UpdateMe(ctx, session.Token, update)
	if err != nil {
		return nil, s.sessions.Expire(ctx, session, err)
	}

	if err := s.sessions.RefreshProfile(ctx, session, user); err != nil {
		logger.WithComponent("dashboard").WithError(err).Warn("не удалось обновить снимок профиля")
	}

	return s.reload(ctx, session, done)
}

// AddSkill добавляет навык и перечитывает кабинет.
func (s *DashboardService) AddSkill(ctx context.Context, session *models.Session, req dto.AddSkillRequest) (*dto.DashboardPage, error) {
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = models.DefaultCurrency
	}

	categoryID, parseErr := uuid.Parse(req.CategoryID)
	if parseErr != nil {
		parseErr = errors.New("категория указана неверно")
	}

	if err := validationError(
		parseErr,
		validation.ValidateSkillName(req.SkillName),
		validation.ValidateSkillDescription(req.Description),
		validation.ValidateExperience(req.ExperienceYears),
		validation.ValidateHourlyRate(req.HourlyRate),
		validation.ValidateCurrency(currency),
	); err != nil {
		return nil, err
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	_, err := s.api.CreateSkill(ctx, session.Token, models.SkillCreate{
		CategoryID:      categoryID,
		SkillName:       strings.TrimSpace(req.SkillName),
		Description:     emptyToNil(req.Description),
		ExperienceYears: req.ExperienceYears,
		HourlyRate:      req.HourlyRate,
		Currency:        currency,
		IsAvailable:     available,
	})
	if err != nil {
		return nil, s.sessions.Expire(ctx, session, err)
	}

	return s.reload(ctx, session, "Навык добавлен")
}

// DeleteSkill удаляет навык и перечитывает кабинет.
func (s *DashboardService) DeleteSkill(ctx context.Context, session *models.Session, skillID uuid.UUID) (*dto.DashboardPage, error) {
	if err := s.api.DeleteSkill(ctx, session.Token, skillID); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Wrap(err, apperror.ErrCodeNotFound, apperror.ErrSkillNotFound.Message)
		}
		return nil, s.sessions.Expire(ctx, session, err)
	}

	return s.reload(ctx, session, "Навык удалён")
}

func (s *DashboardService) reload(ctx context.Context, session *models.Session, done string) (*dto.DashboardPage, error) {
	page, err := s.Dashboard(ctx, session)
	if err != nil {
		return nil, err
	}
	prependNotice(&page.Notices, dto.NoticeSuccess, done)
	return page, nil
}

// trimPtr обрезает пробелы, сохраняя пустую строку: так поле можно очистить.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
