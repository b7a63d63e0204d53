package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skill-connector/internal/dto"
	"github.com/ignatzorin/skill-connector/internal/http/handlers/common"
	"github.com/ignatzorin/skill-connector/internal/http/middleware"
	"github.com/ignatzorin/skill-connector/internal/http/response"
	"github.com/ignatzorin/skill-connector/internal/models"
	"github.com/ignatzorin/skill-connector/internal/service"
)

const adminHomePath = "/admin"

// AdminHandler — HTTP слой панели администратора.
type AdminHandler struct {
	admin    *service.AdminService
	sessions *service.SessionService
	cookies  *middleware.Cookies
}

// NewAdminHandler создаёт хэндлер.
func NewAdminHandler(admin *service.AdminService, sessions *service.SessionService, cookies *middleware.Cookies) *AdminHandler {
	return &AdminHandler{admin: admin, sessions: sessions, cookies: cookies}
}

// Login обрабатывает POST /admin/api/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	out, err := h.admin.Login(c.Request.Context(), req)
	if err != nil {
		common.Fail(c, err)
		return
	}

	h.cookies.Set(c, middleware.AdminRealm, out.Opened.Cookie, out.Opened.Session.ExpiresAt)
	response.Success(c, dto.AdminAuthView{
		Admin:      dto.NewAdminView(out.Admin, out.Admin.ID),
		RedirectTo: adminHomePath,
	})
}

// Logout обрабатывает POST /admin/api/logout.
func (h *AdminHandler) Logout(c *gin.Context) {
	logout(c, h.sessions, h.cookies, middleware.AdminRealm)
}

// Me обрабатывает GET /admin/api/me.
func (h *AdminHandler) Me(c *gin.Context) {
	h.withSession(c, func(session *models.Session) (any, error) {
		admin, err := h.admin.Me(c.Request.Context(), session)
		if err != nil {
			return nil, err
		}
		return dto.AdminAuthView{Admin: dto.NewAdminView(*admin, admin.ID)}, nil
	})
}

// Stats обрабатывает GET /admin/api/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	h.withSession(c, func(session *models.Session) (any, error) {
		return h.admin.Stats(c.Request.Context(), session)
	})
}

// Users обрабатывает GET /admin/api/users.
func (h *AdminHandler) Users(c *gin.Context) {
	h.withSession(c, func(session *models.Session) (any, error) {
		return h.admin.Users(c.Request.Context(), session)
	})
}

// CreateUser обрабатывает POST /admin/api/users.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	h.withSessionStatus(c, true, func(session *models.Session) (any, error) {
		return h.admin.CreateUser(c.Request.Context(), session, req)
	})
}

// DeleteUser обрабатывает DELETE /admin/api/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}

	h.withSession(c, func(session *models.Session) (any, error) {
		return h.admin.DeleteUser(c.Request.Context(), session, userID)
	})
}

// Admins обрабатывает GET /admin/api/admins.
func (h *AdminHandler) Admins(c *gin.Context) {
	h.withSession(c, func(session *models.Session) (any, error) {
		return h.admin.Admins(c.Request.Context(), session)
	})
}

// CreateAdmin обрабатывает POST /admin/api/admins.
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req dto.AdminCreateAdminRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	h.withSessionStatus(c, true, func(session *models.Session) (any, error) {
		return h.admin.CreateAdmin(c.Request.Context(), session, req)
	})
}

// DeleteAdmin обрабатывает DELETE /admin/api/admins/:id.
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	adminID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}

	h.withSession(c, func(session *models.Session) (any, error) {
		return h.admin.DeleteAdmin(c.Request.Context(), session, adminID)
	})
}

// Skills обрабатывает GET /admin/api/skills.
func (h *AdminHandler) Skills(c *gin.Context) {
	h.withSession(c, func(session *models.Session) (any, error) {
		return h.admin.Skills(c.Request.Context(), session)
	})
}

// Categories обрабатывает GET /admin/api/categories.
func (h *AdminHandler) Categories(c *gin.Context) {
	page, err := h.admin.Categories(c.Request.Context())
	if err != nil {
		common.Fail(c, err)
		return
	}

	response.Success(c, page)
}

// ActivityLogs обрабатывает GET /admin/api/activity-logs?limit=.
func (h *AdminHandler) ActivityLogs(c *gin.Context) {
	limit := common.ParseIntQuery(c, "limit", service.DefaultActivityLimit)

	h.withSession(c, func(session *models.Session) (any, error) {
		return h.admin.ActivityLogs(c.Request.Context(), session, limit)
	})
}

func (h *AdminHandler) withSession(c *gin.Context, fn func(session *models.Session) (any, error)) {
	h.withSessionStatus(c, false, fn)
}

// withSessionStatus достаёт сессию, вызывает fn и пишет ответ; created — 201 вместо 200.
func (h *AdminHandler) withSessionStatus(c *gin.Context, created bool, fn func(session *models.Session) (any, error)) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	data, err := fn(session)
	if err != nil {
		common.Fail(c, err)
		return
	}

	if created {
		response.Created(c, data)
		return
	}
	response.Success(c, data)
}
