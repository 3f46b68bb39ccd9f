package usecase

import (
	"context"
	"fmt"

	chat "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/domain"
	repository "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/persistence/repository/port"
)

// SendMessageInput carries the data needed to persist a new message.
// SenderID always comes from the verified identity on the calling side,
// never from client-supplied payload fields.
type SendMessageInput struct {
	ConversationID string
	SenderID       string
	Content        string
}

// SendMessageUseCase handles the SendMessage application service.
// Hexagonal: depends on repository port, returns domain entity.
type SendMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewSendMessageUseCase(repo repository.ChatRepository) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo}
}

// Execute validates and persists a message, returning the stored record
// with its server-assigned id and timestamp.
func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	msg, err := chat.NewMessage(in.ConversationID, in.SenderID, in.Content)
	if err != nil {
		return nil, err
	}

	isParticipant, err := uc.Repo.IsParticipant(ctx, msg.ConversationID, msg.SenderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !isParticipant {
		return nil, chat.ErrNotParticipant
	}

	saved, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return saved, nil
}
