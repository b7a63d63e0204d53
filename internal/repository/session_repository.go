package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/ignatzorin/skill-connector/internal/models"
)

// ErrSessionNotFound возвращается, когда сессии нет или она истекла.
var ErrSessionNotFound = errors.New("session not found")

// KindCounts — число сессий по виду (user, admin).
type KindCounts map[string]int64

// Total возвращает сумму по всем видам.
func (c KindCounts) Total() int64 {
	var n int64
	for _, v := range c {
		n += v
	}
	return n
}

// SessionStore — хранилище серверных сессий.
//
// Delete сообщает, была ли сессия удалена: повторное удаление не ошибка, но и не удаление.
// DeleteExpired и CountByKind считают сессии по виду.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id uuid.UUID) (*models.Session, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, profile types.JSONText) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (KindCounts, error)
	CountByKind(ctx context.Context) (KindCounts, error)
}

// SessionRepository хранит сессии в PostgreSQL.
type SessionRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSessionRepository создаёт экземпляр репозитория.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db, now: time.Now}
}

// Create сохраняет новую сессию.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, kind, subject_id, token, profile, created_at, expires_at)
		VALUES (:id, :kind, :subject_id, :token, :profile, :created_at, :expires_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("session repository: create: %w", err)
	}

	return nil
}

// Get возвращает действующую сессию.
func (r *SessionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	query := `
		SELECT id, kind, subject_id, token, profile, created_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > $2
	`

	var session models.Session
	if err := r.db.GetContext(ctx, &session, query, id, r.now()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("session repository: get: %w", err)
	}

	return &session, nil
}

// UpdateProfile обновляет снимок профиля после изменения на бэкенде.
func (r *SessionRepository) UpdateProfile(ctx context.Context, id uuid.UUID, profile types.JSONText) error {
	res, err := r.db.ExecContext(ctx, `UPDATE sessions SET profile = $1 WHERE id = $2`, profile, id)
	if err != nil {
		return fmt.Errorf("session repository: update profile: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("session repository: update profile rows: %w", err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// Delete удаляет сессию. Отсутствие сессии ошибкой не считается.
func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("session repository: delete: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("session repository: delete rows: %w", err)
	}
	return affected > 0, nil
}

// DeleteExpired удаляет истёкшие сессии и возвращает их количество по видам.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (KindCounts, error) {
	var kinds []string
	if err := r.db.SelectContext(ctx, &kinds, `DELETE FROM sessions WHERE expires_at <= $1 RETURNING kind`, now); err != nil {
		return nil, fmt.Errorf("session repository: delete expired: %w", err)
	}

	counts := make(KindCounts)
	for _, kind := range kinds {
		counts[kind]++
	}
	return counts, nil
}

// CountByKind возвращает число хранимых сессий, включая ещё не удалённые истёкшие.
func (r *SessionRepository) CountByKind(ctx context.Context) (KindCounts, error) {
	var rows []struct {
		Kind  string `db:"kind"`
		Count int64  `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, `SELECT kind, COUNT(*) AS count FROM sessions GROUP BY kind`); err != nil {
		return nil, fmt.Errorf("session repository: count: %w", err)
	}

	counts := make(KindCounts, len(rows))
	for _, row := range rows {
		counts[row.Kind] = row.Count
	}
	return counts, nil
}
