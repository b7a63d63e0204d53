package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skill-connector/internal/metrics"
	"github.com/ignatzorin/skill-connector/internal/models"
	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
)

func TestSessionService_OpenResolveClose(t *testing.T) {
	sessions, store := newTestSessions()
	ctx := context.Background()
	user := models.User{ID: uuid.New(), Email: "anna@example.com", FullName: "Anna"}

	opened, err := sessions.Open(ctx, models.SessionKindUser, user.ID, validToken, user)
	require.NoError(t, err)
	assert.NotEmpty(t, opened.Cookie)
	assert.Equal(t, 1, store.Len())

	resolved, err := sessions.Resolve(ctx, opened.Cookie, models.SessionKindUser)
	require.NoError(t, err)
	assert.Equal(t, validToken, resolved.Token)

	snapshot, err := resolved.User()
	require.NoError(t, err)
	assert.Equal(t, "Anna", snapshot.FullName)

	require.NoError(t, sessions.Close(ctx, resolved))
	assert.Equal(t, 0, store.Len())

	_, err = sessions.Resolve(ctx, opened.Cookie, models.SessionKindUser)
	assert.Equal(t, apperror.ErrCodeSessionExpired, apperror.CodeOf(err))
}

func TestSessionService_ResolveRejectsForeignKind(t *testing.T) {
	sessions, _ := newTestSessions()
	ctx := context.Background()

	opened, err := sessions.Open(ctx, models.SessionKindUser, uuid.New(), validToken, models.User{})
	require.NoError(t, err)

	_, err = sessions.Resolve(ctx, opened.Cookie, models.SessionKindAdmin)
	assert.Equal(t, apperror.ErrCodeUnauthorized, apperror.CodeOf(err))

	_, err = sessions.Resolve(ctx, "", models.SessionKindUser)
	assert.Equal(t, apperror.ErrCodeUnauthorized, apperror.CodeOf(err))

	_, err = sessions.Resolve(ctx, "garbage", models.SessionKindUser)
	assert.Equal(t, apperror.ErrCodeUnauthorized, apperror.CodeOf(err))
}

func TestSessionService_ResolveRejectsOtherSecret(t *testing.T) {
	sessions, _ := newTestSessions()
	other := NewSessionTokens("another-secret-0123456789abcdefgh")

	cookie, err := other.Issue(uuid.New(), models.SessionKindUser, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = sessions.Resolve(context.Background(), cookie, models.SessionKindUser)
	assert.Equal(t, apperror.ErrCodeUnauthorized, apperror.CodeOf(err))
}

func TestSessionService_ExpiryCappedByBackendToken(t *testing.T) {
	sessions, _ := newTestSessions()

	exp := time.Now().Add(10 * time.Minute).Truncate(time.Second)
	backendToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user",
		"exp": exp.Unix(),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	opened, err := sessions.Open(context.Background(), models.SessionKindUser, uuid.New(), backendToken, models.User{})
	require.NoError(t, err)
	assert.True(t, opened.Session.ExpiresAt.Equal(exp), "сессия не должна пережить токен бэкенда")
}

func TestSessionService_ExpireClosesOnlyOn401(t *testing.T) {
	sessions, store := newTestSessions()
	ctx := context.Background()
	session := openUserSession(t, sessions, models.User{ID: uuid.New()}, validToken)

	other := apperror.New(apperror.ErrCodeUpstream, "boom")
	assert.Same(t, other, sessions.Expire(ctx, session, other))
	assert.Equal(t, 1, store.Len())

	err := sessions.Expire(ctx, session, errBackend401)
	assert.Equal(t, apperror.ErrCodeSessionExpired, apperror.CodeOf(err))
	assert.Equal(t, 0, store.Len())
}

func TestSessionService_SweepExpired(t *testing.T) {
	sessions, store := newTestSessions()
	ctx := context.Background()
	openUserSession(t, sessions, models.User{ID: uuid.New()}, validToken)

	sessions.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	n, err := sessions.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 0, store.Len())
}

func activeSessions(kind string) float64 {
	return testutil.ToFloat64(metrics.ActiveSessions.WithLabelValues(kind))
}

func TestSessionService_ActiveGaugeRepeatedExpire(t *testing.T) {
	sessions, _ := newTestSessions()
	ctx := context.Background()
	before := activeSessions(models.SessionKindUser)

	session := openUserSession(t, sessions, models.User{ID: uuid.New()}, validToken)
	assert.Equal(t, before+1, activeSessions(models.SessionKindUser))

	// Два параллельных запроса получили 401 на одной сессии.
	_ = sessions.Expire(ctx, session, errBackend401)
	_ = sessions.Expire(ctx, session, errBackend401)
	require.NoError(t, sessions.Close(ctx, session))

	assert.Equal(t, before, activeSessions(models.SessionKindUser))
}

func TestSessionService_ActiveGaugeSweep(t *testing.T) {
	sessions, _ := newTestSessions()
	ctx := context.Background()
	userBefore := activeSessions(models.SessionKindUser)
	adminBefore := activeSessions(models.SessionKindAdmin)

	openUserSession(t, sessions, models.User{ID: uuid.New()}, validToken)
	openUserSession(t, sessions, models.User{ID: uuid.New()}, validToken)
	openAdminSession(t, sessions, models.Admin{ID: uuid.New()}, validToken)

	sessions.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	n, err := sessions.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	assert.Equal(t, userBefore, activeSessions(models.SessionKindUser))
	assert.Equal(t, adminBefore, activeSessions(models.SessionKindAdmin))
}

func TestSessionService_SeedActiveGauge(t *testing.T) {
	sessions, store := newTestSessions()
	ctx := context.Background()

	openUserSession(t, sessions, models.User{ID: uuid.New()}, validToken)
	openUserSession(t, sessions, models.User{ID: uuid.New()}, validToken)
	require.Equal(t, 2, store.Len())

	require.NoError(t, sessions.SeedActiveGauge(ctx))
	assert.Equal(t, float64(2), activeSessions(models.SessionKindUser))
	assert.Equal(t, float64(0), activeSessions(models.SessionKindAdmin))
}

func TestSessionService_RefreshProfile(t *testing.T) {
	sessions, _ := newTestSessions()
	ctx := context.Background()
	user := models.User{ID: uuid.New(), FullName: "Old"}
	session := openUserSession(t, sessions, user, validToken)

	user.FullName = "New"
	require.NoError(t, sessions.RefreshProfile(ctx, session, user))

	reloaded, err := sessions.store.Get(ctx, session.ID)
	require.NoError(t, err)
	snapshot, err := reloaded.User()
	require.NoError(t, err)
	assert.Equal(t, "New", snapshot.FullName)
}
