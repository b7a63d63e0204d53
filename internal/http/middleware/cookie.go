package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookies выставляет и удаляет cookie сессии. Значение — подписанный id сессии.
type Cookies struct {
	Secure bool
	now    func() time.Time
}

// NewCookies создаёт настройки cookie. secure включает флаг Secure (нужен HTTPS).
func NewCookies(secure bool) *Cookies {
	return &Cookies{Secure: secure, now: time.Now}
}

// Set выставляет HttpOnly cookie, живущую до expiresAt.
func (k *Cookies) Set(c *gin.Context, realm Realm, value string, expiresAt time.Time) {
	maxAge := int(expiresAt.Sub(k.now()).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(realm.CookieName, value, maxAge, "/", "", k.Secure, true)
}

// Clear удаляет cookie.
func (k *Cookies) Clear(c *gin.Context, realm Realm) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(realm.CookieName, "", -1, "/", "", k.Secure, true)
}
