package backend

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/ignatzorin/skill-connector/internal/models"
)

// SendMessage отправляет сообщение собеседнику.
func (c *Client) SendMessage(ctx context.Context, token string, req models.SendMessageRequest) (*models.Message, error) {
	var out models.Message
	if err := c.post(ctx, "/messages/send", "/messages/send", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListConversations возвращает диалоги владельца токена, последние сверху.
func (c *Client) ListConversations(ctx context.Context, token string) ([]models.ConversationSummary, error) {
	var out []models.ConversationSummary
	if err := c.get(ctx, "/messages/conversations", "/messages/conversations", token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetConversation возвращает всю переписку с собеседником.
// Бэкенд при этом помечает входящие сообщения прочитанными.
func (c *Client) GetConversation(ctx context.Context, token string, partnerID uuid.UUID) (*models.ConversationThread, error) {
	var out models.ConversationThread
	path := "/messages/conversation/" + url.PathEscape(partnerID.String())
	if err := c.get(ctx, path, "/messages/conversation/:id", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
