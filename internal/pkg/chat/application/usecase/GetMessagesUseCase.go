package usecase

import (
	"context"
	"fmt"

	chat "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/domain"
	repository "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/persistence/repository/port"
)

// GetMessagesInput carries parameters to fetch history for a conversation.
// RequesterID gates access: only participants may read a thread.
type GetMessagesInput struct {
	ConversationID string
	RequesterID    string
	Limit          int
	Offset         int
}

// GetMessagesUseCase fetches message history for a conversation.
type GetMessagesUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessagesUseCase(repo repository.ChatRepository) *GetMessagesUseCase {
	return &GetMessagesUseCase{Repo: repo}
}

// Execute returns messages for the conversation honoring limit/offset.
func (uc *GetMessagesUseCase) Execute(ctx context.Context, in GetMessagesInput) ([]chat.Message, error) {
	if in.ConversationID == "" {
		return nil, fmt.Errorf("conversationId is required")
	}

	ok, err := uc.Repo.IsParticipant(ctx, in.ConversationID, in.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return nil, chat.ErrNotParticipant
	}

	msgs, err := uc.Repo.GetMessagesByConversation(ctx, in.ConversationID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
