package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skill-connector/internal/dto"
	"github.com/ignatzorin/skill-connector/internal/http/handlers/common"
	"github.com/ignatzorin/skill-connector/internal/http/response"
	"github.com/ignatzorin/skill-connector/internal/service"
)

// DashboardHandler — личный кабинет: профиль, местоположение, навыки.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler создаёт хэндлер.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get обрабатывает GET /api/dashboard.
func (h *DashboardHandler) Get(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	page, err := h.dashboard.Dashboard(c.Request.Context(), session)
	if err != nil {
		common.Fail(c, err)
		return
	}

	response.Success(c, page)
}

// UpdateProfile обрабатывает PUT /api/dashboard/profile.
func (h *DashboardHandler) UpdateProfile(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	page, err := h.dashboard.UpdateProfile(c.Request.Context(), session, req)
	if err != nil {
		common.Fail(c, err)
		return
	}

	response.Success(c, page)
}

// UpdateLocation обрабатывает PUT /api/dashboard/location.
func (h *DashboardHandler) UpdateLocation(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	var req dto.UpdateLocationRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	page, err := h.dashboard.UpdateLocation(c.Request.Context(), session, req)
	if err != nil {
		common.Fail(c, err)
		return
	}

	response.Success(c, page)
}

// AddSkill обрабатывает POST /api/dashboard/skills.
func (h *DashboardHandler) AddSkill(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	var req dto.AddSkillRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	page, err := h.dashboard.AddSkill(c.Request.Context(), session, req)
	if err != nil {
		common.Fail(c, err)
		return
	}

	response.Created(c, page)
}

// DeleteSkill обрабатывает DELETE /api/dashboard/skills/:id.
func (h *DashboardHandler) DeleteSkill(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	skillID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.Fail(c, err)
		return
	}

	page, err := h.dashboard.DeleteSkill(c.Request.Context(), session, skillID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	response.Success(c, page)
}
