package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionTokenIssuer = "skill-connector-portal"

var errSessionTokenInvalid = errors.New("session token invalid")

// SessionTokens подписывает идентификатор сессии для cookie.
// В токене нет ничего, кроме id и вида сессии: всё остальное хранится на сервере.
type SessionTokens struct {
	secret []byte
}

// NewSessionTokens создаёт подписчик токенов сессии.
func NewSessionTokens(secret string) *SessionTokens {
	return &SessionTokens{secret: []byte(secret)}
}

// Issue выпускает HS256 токен для сессии.
func (t *SessionTokens) Issue(sessionID uuid.UUID, kind string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sid":  sessionID.String(),
		"kind": kind,
		"iss":  sessionTokenIssuer,
		"iat":  time.Now().Unix(),
		"exp":  expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("session tokens: sign: %w", err)
	}
	return signed, nil
}

// Parse проверяет подпись и срок токена и возвращает id сессии нужного вида.
func (t *SessionTokens) Parse(raw, kind string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionTokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("session tokens: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, errSessionTokenInvalid
	}

	if gotKind, _ := claims["kind"].(string); gotKind != kind {
		return uuid.Nil, errSessionTokenInvalid
	}

	sid, _ := claims["sid"].(string)
	id, err := uuid.Parse(sid)
	if err != nil {
		return uuid.Nil, errSessionTokenInvalid
	}

	return id, nil
}
