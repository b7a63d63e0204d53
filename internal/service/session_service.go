package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skill-connector/internal/backend"
	"github.com/ignatzorin/skill-connector/internal/goroutine"
	"github.com/ignatzorin/skill-connector/internal/logger"
	"github.com/ignatzorin/skill-connector/internal/metrics"
	"github.com/ignatzorin/skill-connector/internal/models"
	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
	"github.com/ignatzorin/skill-connector/internal/repository"
)

// SessionService открывает, находит и закрывает серверные сессии.
type SessionService struct {
	store  repository.SessionStore
	tokens *SessionTokens
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService создаёт сервис сессий.
func NewSessionService(store repository.SessionStore, tokens *SessionTokens, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionService{store: store, tokens: tokens, ttl: ttl, now: time.Now}
}

// OpenedSession — сессия вместе с подписанным значением cookie.
type OpenedSession struct {
	Session *models.Session
	Cookie  string
}

// Open создаёт сессию для токена бэкенда. Сессия не живёт дольше самого токена.
func (s *SessionService) Open(ctx context.Context, kind string, subjectID uuid.UUID, backendToken string, profile any) (*OpenedSession, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	if exp, err := backend.TokenExpiry(backendToken); err == nil && !exp.IsZero() && exp.Before(expiresAt) {
		expiresAt = exp
	}

	session := &models.Session{
		ID:        uuid.New(),
		Kind:      kind,
		SubjectID: subjectID,
		Token:     backendToken,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}
	if err := session.SetProfile(profile); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("session service: open: %w", err)
	}

	cookie, err := s.tokens.Issue(session.ID, kind, expiresAt)
	if err != nil {
		_, _ = s.store.Delete(ctx, session.ID)
		return nil, err
	}

	metrics.ActiveSessions.WithLabelValues(kind).Inc()
	logger.WithComponent("session").WithFields(logrus.Fields{
		"session_id": session.ID,
		"kind":       kind,
		"subject_id": subjectID,
	}).Info("сессия открыта")

	return &OpenedSession{Session: session, Cookie: cookie}, nil
}

// Resolve находит действующую сессию по значению cookie.
func (s *SessionService) Resolve(ctx context.Context, cookie, kind string) (*models.Session, error) {
	if cookie == "" {
		return nil, apperror.ErrUnauthorized
	}

	id, err := s.tokens.Parse(cookie, kind)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, apperror.ErrUnauthorized.Message)
	}

	session, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, apperror.Wrap(err, apperror.ErrCodeSessionExpired, apperror.ErrSessionExpired.Message)
		}
		return nil, fmt.Errorf("session service: resolve: %w", err)
	}

	return session, nil
}

// Close удаляет сессию. Повторное закрытие ничего не делает.
func (s *SessionService) Close(ctx context.Context, session *models.Session) error {
	if session == nil {
		return nil
	}
	deleted, err := s.store.Delete(ctx, session.ID)
	if err != nil {
		return fmt.Errorf("session service: close: %w", err)
	}
	if !deleted {
		return nil
	}
	metrics.ActiveSessions.WithLabelValues(session.Kind).Dec()
	logger.WithComponent("session").WithField("session_id", session.ID).Info("сессия закрыта")
	return nil
}

// RefreshProfile сохраняет свежий снимок профиля после изменения на бэкенде.
func (s *SessionService) RefreshProfile(ctx context.Context, session *models.Session, profile any) error {
	if err := session.SetProfile(profile); err != nil {
		return err
	}
	if err := s.store.UpdateProfile(ctx, session.ID, session.Profile); err != nil {
		return fmt.Errorf("session service: refresh profile: %w", err)
	}
	return nil
}

// Expire проверяет ошибку бэкенда: при 401 сессия закрывается и возвращается
// SESSION_EXPIRED, остальные ошибки возвращаются без изменений.
func (s *SessionService) Expire(ctx context.Context, session *models.Session, err error) error {
	if err == nil || !apperror.IsSessionExpired(err) {
		return err
	}
	if closeErr := s.Close(ctx, session); closeErr != nil {
		logger.WithComponent("session").WithError(closeErr).Warn("не удалось закрыть истёкшую сессию")
	}
	return apperror.Wrap(err, apperror.ErrCodeSessionExpired, apperror.ErrSessionExpired.Message)
}

// SweepExpired удаляет истёкшие сессии.
func (s *SessionService) SweepExpired(ctx context.Context) (int64, error) {
	counts, err := s.store.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("session service: sweep: %w", err)
	}
	for kind, n := range counts {
		metrics.ActiveSessions.WithLabelValues(kind).Sub(float64(n))
	}
	return counts.Total(), nil
}

// SeedActiveGauge выставляет gauge сессий по содержимому хранилища.
// Вызывается один раз при старте, до открытия новых сессий.
func (s *SessionService) SeedActiveGauge(ctx context.Context) error {
	counts, err := s.store.CountByKind(ctx)
	if err != nil {
		return fmt.Errorf("session service: seed gauge: %w", err)
	}
	for _, kind := range []string{models.SessionKindUser, models.SessionKindAdmin} {
		metrics.ActiveSessions.WithLabelValues(kind).Set(float64(counts[kind]))
	}
	return nil
}

// StartSweeper периодически чистит истёкшие сессии, пока ctx не отменён.
func (s *SessionService) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log := logger.WithComponent("session")
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.SweepExpired(ctx)
				if err != nil {
					log.WithError(err).Warn("очистка сессий не удалась")
					continue
				}
				if n > 0 {
					log.WithField("deleted", n).Info("истёкшие сессии удалены")
				}
			}
		}
	})
}
