package models

import "github.com/google/uuid"

// Message — личное сообщение между двумя пользователями.
type Message struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"sender_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
	Message    string    `json:"message"`
	CreatedAt  Timestamp `json:"created_at"`
	IsRead     bool      `json:"is_read"`
}

// ConversationSummary — строка входящих: диалог, сгруппированный по собеседнику.
type ConversationSummary struct {
	PartnerID       uuid.UUID `json:"partner_id"`
	PartnerName     string    `json:"partner_name"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime Timestamp `json:"last_message_time"`
	UnreadCount     int       `json:"unread_count"`
	IsSender        bool      `json:"is_sender"`
}

// ConversationThread — вся переписка с одним собеседником в порядке отправки.
type ConversationThread struct {
	PartnerID   uuid.UUID `json:"partner_id"`
	PartnerName string    `json:"partner_name"`
	Messages    []Message `json:"messages"`
}

// SendMessageRequest — тело /messages/send.
type SendMessageRequest struct {
	ReceiverID uuid.UUID `json:"receiver_id"`
	Message    string    `json:"message"`
}
