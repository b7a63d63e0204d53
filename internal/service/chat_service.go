package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/skill-connector/internal/chat"
	"github.com/ignatzorin/skill-connector/internal/dto"
	"github.com/ignatzorin/skill-connector/internal/logger"
	"github.com/ignatzorin/skill-connector/internal/models"
	"github.com/ignatzorin/skill-connector/internal/pkg/apperror"
	"github.com/ignatzorin/skill-connector/internal/validation"
)

// ChatAPI описывает зависимости переписки от бэкенда.
type ChatAPI interface {
	ListConversations(ctx context.Context, token string) ([]models.ConversationSummary, error)
	GetConversation(ctx context.Context, token string, partnerID uuid.UUID) (*models.ConversationThread, error)
	SendMessage(ctx context.Context, token string, req models.SendMessageRequest) (*models.Message, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// ChatService — входящие и лента диалога.
type ChatService struct {
	api       ChatAPI
	sessions  *SessionService
	formatter *chat.Formatter
}

// NewChatService создаёт сервис.
func NewChatService(api ChatAPI, sessions *SessionService, formatter *chat.Formatter) *ChatService {
	return &ChatService{api: api, sessions: sessions, formatter: formatter}
}

// Inbox возвращает список диалогов. Сбой бэкенда превращается в notice.
func (s *ChatService) Inbox(ctx context.Context, session *models.Session, search string) (*dto.InboxPage, error) {
	search = strings.TrimSpace(search)
	if err := validationError(validation.ValidateSearchQuery(search)); err != nil {
		return nil, err
	}

	page := &dto.InboxPage{Search: search, Conversations: []chat.InboxRow{}}

	conversations, err := s.api.ListConversations(ctx, session.Token)
	if err != nil {
		if err := s.sessions.Expire(ctx, session, err); apperror.IsSessionExpired(err) || cancelled(ctx) {
			return nil, err
		}
		logger.WithComponent("chat").WithError(err).Warn("диалоги не загружены")
		page.Add(dto.NoticeError, noticeMessage(err, "Не удалось загрузить диалоги"))
		page.Ensure()
		return page, nil
	}

	page.Conversations = s.formatter.Inbox(conversations, search)
	page.UnreadTotal = chat.UnreadTotal(conversations)
	page.Ensure()
	return page, nil
}

// Thread возвращает ленту с собеседником, сгруппированную по дням.
func (s *ChatService) Thread(ctx context.Context, session *models.Session, partnerID uuid.UUID) (*dto.ChatPage, error) {
	if partnerID == session.SubjectID {
		return nil, apperror.New(apperror.ErrCodeBadRequest, "нельзя написать самому себе")
	}

	page := &dto.ChatPage{PartnerID: partnerID, Days: []chat.DayGroup{}}

	thread, err := s.api.GetConversation(ctx, session.Token, partnerID)
	if err != nil {
		if err := s.sessions.Expire(ctx, session, err); apperror.IsSessionExpired(err) || cancelled(ctx) {
			return nil, err
		}
		logger.WithComponent("chat").WithError(err).WithField("partner_id", partnerID).Warn("лента не загружена")
		page.Add(dto.NoticeError, noticeMessage(err, "Не удалось загрузить сообщения"))
	} else {
		page.PartnerName = thread.PartnerName
		page.Days = s.formatter.GroupByDay(thread.Messages, session.SubjectID)
	}

	if page.PartnerName == "" {
		page.PartnerName = s.partnerName(ctx, partnerID)
	}
	page.PartnerInitial = chat.Initial(page.PartnerName)
	page.Ensure()

	return page, nil
}

// Send отправляет сообщение и возвращает обновлённую ленту.
func (s *ChatService) Send(ctx context.Context, session *models.Session, partnerID uuid.UUID, req dto.SendMessageRequest) (*dto.ChatPage, error) {
	if partnerID == session.SubjectID {
		return nil, apperror.New(apperror.ErrCodeBadRequest, "нельзя написать самому себе")
	}

	text := strings.TrimSpace(req.Message)
	if err := validationError(validation.ValidateMessageContent(text)); err != nil {
		return nil, err
	}

	_, err := s.api.SendMessage(ctx, session.Token, models.SendMessageRequest{
		ReceiverID: partnerID,
		Message:    text,
	})
	if err != nil {
		return nil, s.sessions.Expire(ctx, session, err)
	}

	return s.Thread(ctx, session, partnerID)
}

// partnerName берёт имя из публичного профиля, если лента его не вернула.
func (s *ChatService) partnerName(ctx context.Context, partnerID uuid.UUID) string {
	user, err := s.api.GetUser(ctx, partnerID)
	if err != nil {
		logger.WithComponent("chat").WithError(err).Debug("имя собеседника недоступно")
		return ""
	}
	return user.FullName
}
