package usecase

import (
	"context"
	"fmt"
	"time"

	chat "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/domain"
	repository "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/persistence/repository/port"
)

// CreateConversationInput carries the required data to open a new thread
// between the authenticated creator and a peer user.
type CreateConversationInput struct {
	CreatorID string
	PeerID    string
}

// CreateConversationUseCase handles creation of a new conversation.
// Hexagonal: depends on repository port only.
type CreateConversationUseCase struct {
	Repo repository.ChatRepository
}

func NewCreateConversationUseCase(repo repository.ChatRepository) *CreateConversationUseCase {
	return &CreateConversationUseCase{Repo: repo}
}

// Execute persists a conversation record for the participant pair.
func (uc *CreateConversationUseCase) Execute(ctx context.Context, in CreateConversationInput) (*chat.Conversation, error) {
	if in.CreatorID == "" || in.PeerID == "" {
		return nil, fmt.Errorf("creator and peer user ids are required")
	}
	if in.CreatorID == in.PeerID {
		return nil, fmt.Errorf("a conversation needs two distinct participants")
	}

	now := time.Now().UTC()
	conv := chat.Conversation{
		UserOneID: in.CreatorID,
		UserTwoID: in.PeerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := uc.Repo.CreateConversation(ctx, conv)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	conv.ID = id
	return &conv, nil
}
