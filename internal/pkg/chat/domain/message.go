package chat

import (
	"errors"
	"strings"
	"time"
)

// Domain-level errors for chat behaviors
var (
	ErrNotParticipant = errors.New("chat: sender is not a participant in the conversation")
	ErrEmptyContent   = errors.New("chat: message content is empty")
	ErrNotFound       = errors.New("chat: conversation not found")
)

// Message is an immutable log entry in a conversation.
// ID and CreatedAt are assigned by the store on insert; IsRead starts false
// and is flipped by the read-receipt flow outside this service.
type Message struct {
	ID             string    `db:"id" json:"id"`
	ConversationID string    `db:"conversation_id" json:"conversationId"`
	SenderID       string    `db:"sender_id" json:"senderId"`
	Content        string    `db:"content" json:"content"`
	IsRead         bool      `db:"is_read" json:"isRead"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// NewMessage validates and normalizes an outgoing message before persistence.
// Content is trimmed; whitespace-only content is rejected with ErrEmptyContent
// so callers can treat it as a no-op rather than a hard failure.
func NewMessage(conversationID, senderID, content string) (*Message, error) {
	if conversationID == "" || senderID == "" {
		return nil, errors.New("chat: conversation_id and sender_id are required")
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyContent
	}

	return &Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        trimmed,
	}, nil
}
