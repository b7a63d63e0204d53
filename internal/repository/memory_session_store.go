package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"

	"github.com/ignatzorin/skill-connector/internal/models"
)

// MemorySessionStore хранит сессии в памяти процесса (разработка, тесты, CLI).
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]models.Session
	now      func() time.Time
}

// NewMemorySessionStore создаёт пустое хранилище.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[uuid.UUID]models.Session),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = cloneSession(*session)
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id uuid.UUID) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok || session.Expired(s.now()) {
		return nil, ErrSessionNotFound
	}

	cp := cloneSession(session)
	return &cp, nil
}

func (s *MemorySessionStore) UpdateProfile(_ context.Context, id uuid.UUID, profile types.JSONText) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	session.Profile = append(types.JSONText(nil), profile...)
	s.sessions[id] = session
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false, nil
	}
	delete(s.sessions, id)
	return true, nil
}

func (s *MemorySessionStore) DeleteExpired(_ context.Context, now time.Time) (KindCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(KindCounts)
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
			counts[session.Kind]++
		}
	}
	return counts, nil
}

func (s *MemorySessionStore) CountByKind(_ context.Context) (KindCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(KindCounts)
	for _, session := range s.sessions {
		counts[session.Kind]++
	}
	return counts, nil
}

// Len возвращает число хранимых сессий, включая истёкшие.
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func cloneSession(session models.Session) models.Session {
	session.Profile = append(types.JSONText(nil), session.Profile...)
	return session
}
