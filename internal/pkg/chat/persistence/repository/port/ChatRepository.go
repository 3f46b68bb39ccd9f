package repository

import (
	"context"

	chat "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/domain"
)

// ChatRepository defines persistence operations for the chat domain.
// SaveMessage returns the fully populated record (store-assigned id and
// timestamp); clients never supply either.
type ChatRepository interface {
	CreateConversation(ctx context.Context, c chat.Conversation) (string, error)
	GetConversation(ctx context.Context, id string) (*chat.Conversation, error)
	ListConversationsByUser(ctx context.Context, userID string) ([]chat.Conversation, error)
	SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error)
	GetMessagesByConversation(ctx context.Context, conversationID string, limit int, offset int) ([]chat.Message, error)
	IsParticipant(ctx context.Context, conversationID string, userID string) (bool, error)
	ListParticipantIDs(ctx context.Context, conversationID string) ([]string, error)
}
