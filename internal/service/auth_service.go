package service

import (
	"context"
	"strings"

	"github.com/ignatzorin/skill-connector/internal/dto"
	"github.com/ignatzorin/skill-connector/internal/logger"
	"github.com/ignatzorin/skill-connector/internal/models"
	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
	"github.com/ignatzorin/skill-connector/internal/validation"
)

// AuthAPI описывает зависимости AuthService от бэкенда.
type AuthAPI interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error)
	GetMe(ctx context.Context, token string) (*models.User, error)
}

// AuthService инкапсулирует вход, регистрацию и выход пользователя.
type AuthService struct {
	api      AuthAPI
	sessions *SessionService
}

// NewAuthService создаёт сервис.
func NewAuthService(api AuthAPI, sessions *SessionService) *AuthService {
	return &AuthService{api: api, sessions: sessions}
}

// AuthOutcome — открытая сессия и профиль пользователя.
type AuthOutcome struct {
	Opened *OpenedSession
	User   models.User
}

// Signup регистрирует пользователя на бэкенде и сразу открывает сессию.
func (s *AuthService) Signup(ctx context.Context, req dto.SignupRequest) (*AuthOutcome, error) {
	email := normalizeEmail(req.Email)
	if err := validationError(
		validation.ValidateEmail(email),
		validation.ValidatePassword(req.Password),
		validation.ValidatePasswordConfirmation(req.Password, req.ConfirmPassword),
		validation.ValidateFullName(req.FullName),
		validation.ValidatePhone(req.Phone),
		validation.ValidateBio(req.Bio),
		validation.ValidateCoordinates(req.Latitude, req.Longitude),
	); err != nil {
		return nil, err
	}

	result, err := s.api.Signup(ctx, models.SignupRequest{
		Email:     email,
		Password:  req.Password,
		FullName:  strings.TrimSpace(req.FullName),
		Phone:     emptyToNil(req.Phone),
		Bio:       emptyToNil(req.Bio),
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return nil, err
	}

	return s.open(ctx, result)
}

// Login проверяет учётные данные на бэкенде и открывает сессию.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*AuthOutcome, error) {
	email := normalizeEmail(req.Email)
	if err := validationError(
		validation.ValidateEmail(email),
		validation.ValidateNonEmpty("пароль", req.Password),
	); err != nil {
		return nil, err
	}

	result, err := s.api.Login(ctx, models.LoginRequest{Email: email, Password: req.Password})
	if err != nil {
		// 401 на входе означает неверный пароль, а не истёкшую сессию
		if apperror.IsSessionExpired(err) {
			return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, apperror.ErrInvalidCredentials.Message)
		}
		return nil, err
	}

	return s.open(ctx, result)
}

func (s *AuthService) open(ctx context.Context, result *models.AuthResult) (*AuthOutcome, error) {
	if result.AccessToken == "" {
		return nil, apperror.New(apperror.ErrCodeUpstream, "сервис не выдал токен")
	}

	opened, err := s.sessions.Open(ctx, models.SessionKindUser, result.User.ID, result.AccessToken, result.User)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось открыть сессию")
	}

	return &AuthOutcome{Opened: opened, User: result.User}, nil
}

// Logout закрывает сессию.
func (s *AuthService) Logout(ctx context.Context, session *models.Session) error {
	return s.sessions.Close(ctx, session)
}

// Me возвращает актуальный профиль. Если бэкенд недоступен, отдаётся снимок из сессии.
func (s *AuthService) Me(ctx context.Context, session *models.Session) (*models.User, error) {
	user, err := s.api.GetMe(ctx, session.Token)
	if err != nil {
		if err := s.sessions.Expire(ctx, session, err); apperror.IsSessionExpired(err) {
			return nil, err
		}
		logger.WithComponent("auth").WithError(err).Warn("профиль из снимка сессии")
		return session.User()
	}

	if err := s.sessions.RefreshProfile(ctx, session, user); err != nil {
		logger.WithComponent("auth").WithError(err).Warn("не удалось обновить снимок профиля")
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// emptyToNil превращает пустую строку в отсутствующее поле.
func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
