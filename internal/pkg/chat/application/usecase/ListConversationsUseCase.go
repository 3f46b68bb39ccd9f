package usecase

import (
	"context"
	"fmt"

	chat "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/domain"
	repository "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/persistence/repository/port"
)

// ListConversationsInput wraps the user whose threads are listed.
type ListConversationsInput struct {
	UserID string
}

// ListConversationsUseCase returns a user's conversations ordered by recency.
type ListConversationsUseCase struct {
	Repo repository.ChatRepository
}

func NewListConversationsUseCase(repo repository.ChatRepository) *ListConversationsUseCase {
	return &ListConversationsUseCase{Repo: repo}
}

func (uc *ListConversationsUseCase) Execute(ctx context.Context, in ListConversationsInput) ([]chat.Conversation, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	convs, err := uc.Repo.ListConversationsByUser(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return convs, nil
}
