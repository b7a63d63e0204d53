package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skill-connector/internal/dto"
	"github.com/ignatzorin/skill-connector/internal/http/handlers/common"
	"github.com/ignatzorin/skill-connector/internal/http/middleware"
	"github.com/ignatzorin/skill-connector/internal/http/response"
	"github.com/ignatzorin/skill-connector/internal/service"
)

// После входа пользователь попадает в личный кабинет.
const userHomePath = "/dashboard"

// AuthHandler предоставляет HTTP слой для регистрации, входа и выхода.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *service.SessionService
	cookies  *middleware.Cookies
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(auth *service.AuthService, sessions *service.SessionService, cookies *middleware.Cookies) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, cookies: cookies}
}

// Signup обрабатывает POST /api/auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	out, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		common.Fail(c, err)
		return
	}

	h.cookies.Set(c, middleware.UserRealm, out.Opened.Cookie, out.Opened.Session.ExpiresAt)
	response.Created(c, dto.AuthView{User: dto.NewUserView(out.User), RedirectTo: userHomePath})
}

// Login обрабатывает POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	out, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		common.Fail(c, err)
		return
	}

	h.cookies.Set(c, middleware.UserRealm, out.Opened.Cookie, out.Opened.Session.ExpiresAt)
	response.Success(c, dto.AuthView{User: dto.NewUserView(out.User), RedirectTo: userHomePath})
}

// Logout обрабатывает POST /api/auth/logout. Cookie удаляется, даже если сессии уже нет.
func (h *AuthHandler) Logout(c *gin.Context) {
	logout(c, h.sessions, h.cookies, middleware.UserRealm)
}

// Me обрабатывает GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	user, err := h.auth.Me(c.Request.Context(), session)
	if err != nil {
		common.Fail(c, err)
		return
	}

	response.Success(c, dto.AuthView{User: dto.NewUserView(*user)})
}

func logout(c *gin.Context, sessions *service.SessionService, cookies *middleware.Cookies, realm middleware.Realm) {
	raw, _ := c.Cookie(realm.CookieName)
	if session, err := sessions.Resolve(c.Request.Context(), raw, realm.Kind); err == nil {
		if err := sessions.Close(c.Request.Context(), session); err != nil {
			common.Fail(c, err)
			return
		}
	}

	cookies.Clear(c, realm)
	response.Success(c, gin.H{"redirect_to": realm.LoginPath})
}
