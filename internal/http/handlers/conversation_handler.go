package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skill-connector/internal/dto"
	"github.com/ignatzorin/skill-connector/internal/http/handlers/common"
	"github.com/ignatzorin/skill-connector/internal/http/response"
	"github.com/ignatzorin/skill-connector/internal/service"
)

// ConversationHandler — входящие и переписка.
type ConversationHandler struct {
	chat *service.ChatService
}

// NewConversationHandler создаёт хэндлер.
func NewConversationHandler(chat *service.ChatService) *ConversationHandler {
	return &ConversationHandler{chat: chat}
}

// Inbox обрабатывает GET /api/inbox?q=.
func (h *ConversationHandler) Inbox(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	page, err := h.chat.Inbox(c.Request.Context(), session, c.Query("q"))
	if err != nil {
		common.Fail(c, err)
		return
	}

	response.Success(c, page)
}

// Thread обрабатывает GET /api/chat/:partnerId.
func (h *ConversationHandler) Thread(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	partnerID, err := common.ParseUUIDParam(c, "partnerId")
	if err != nil {
		common.Fail(c, err)
		return
	}

	page, err := h.chat.Thread(c.Request.Context(), session, partnerID)
	if err != nil {
		common.Fail(c, err)
		return
	}

	response.Success(c, page)
}

// Send обрабатывает POST /api/chat/:partnerId.
func (h *ConversationHandler) Send(c *gin.Context) {
	session, err := common.CurrentSession(c)
	if err != nil {
		common.Fail(c, err)
		return
	}

	partnerID, err := common.ParseUUIDParam(c, "partnerId")
	if err != nil {
		common.Fail(c, err)
		return
	}

	var req dto.SendMessageRequest
	if err := common.BindJSON(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	page, err := h.chat.Send(c.Request.Context(), session, partnerID, req)
	if err != nil {
		common.Fail(c, err)
		return
	}

	response.Created(c, page)
}
