package usecase

import (
	"context"
	"fmt"

	repository "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/persistence/repository/port"
)

// ListParticipantsInput wraps the conversation identifier to fetch its members.
type ListParticipantsInput struct {
	ConversationID string
}

// ListParticipantsUseCase returns user IDs for both members of the conversation.
// The realtime fan-out path uses this to scope delivery to participants.
type ListParticipantsUseCase struct {
	Repo repository.ChatRepository
}

func NewListParticipantsUseCase(repo repository.ChatRepository) *ListParticipantsUseCase {
	return &ListParticipantsUseCase{Repo: repo}
}

func (uc *ListParticipantsUseCase) Execute(ctx context.Context, in ListParticipantsInput) ([]string, error) {
	if in.ConversationID == "" {
		return nil, fmt.Errorf("conversation_id is required")
	}

	ids, err := uc.Repo.ListParticipantIDs(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return ids, nil
}
