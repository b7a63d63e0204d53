package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skill-connector/internal/http/response"
	"github.com/ignatzorin/skill-connector/internal/models"
	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
)

// Context ключи для gin.Context.
const (
	ContextSessionKey   = "session"
	ContextRealmKey     = "realm"
	ContextRequestIDKey = "requestID"
)

// Realm описывает один вид входа: свою cookie и свою страницу логина.
type Realm struct {
	Kind       string
	CookieName string
	LoginPath  string
}

var (
	UserRealm  = Realm{Kind: models.SessionKindUser, CookieName: "sc_session", LoginPath: "/login"}
	AdminRealm = Realm{Kind: models.SessionKindAdmin, CookieName: "sc_admin_session", LoginPath: "/admin/login"}
)

// SessionResolver находит сессию по значению cookie.
type SessionResolver interface {
	Resolve(ctx context.Context, cookie, kind string) (*models.Session, error)
}

// WithRealm запоминает realm маршрута, чтобы ErrorHandler знал, какую cookie чистить.
func WithRealm(realm Realm) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextRealmKey, realm)
		c.Next()
	}
}

// SessionAuth пускает дальше только запросы с действующей сессией нужного вида.
// Без сессии отвечает 401 с redirect_to на страницу входа.
func SessionAuth(sessions SessionResolver, realm Realm, cookies *Cookies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextRealmKey, realm)

		raw, _ := c.Cookie(realm.CookieName)
		session, err := sessions.Resolve(c.Request.Context(), raw, realm.Kind)
		if err != nil {
			if !apperror.IsSessionExpired(err) {
				_ = c.Error(err)
				c.Abort()
				return
			}

			afterMs := 0
			if apperror.CodeOf(err) == apperror.ErrCodeSessionExpired {
				afterMs = response.RedirectAfterMs
			}
			if raw != "" {
				cookies.Clear(c, realm)
			}
			response.Redirect(c, err, realm.LoginPath, afterMs)
			return
		}

		c.Set(ContextSessionKey, session)
		c.Next()
	}
}
