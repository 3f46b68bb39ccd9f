package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/domain"
)

func TestSendMessagePersistsForParticipant(t *testing.T) {
	repo := newFakeRepo()
	repo.addConversation("c1", "u1", "u2")
	uc := NewSendMessageUseCase(repo)

	msg, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: "c1",
		SenderID:       "u1",
		Content:        "  hello  ",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, "u1", msg.SenderID)
	assert.False(t, msg.IsRead)
	require.Len(t, repo.savedMessages(), 1)
}

func TestSendMessageRejectsNonParticipant(t *testing.T) {
	repo := newFakeRepo()
	repo.addConversation("c1", "u1", "u2")
	uc := NewSendMessageUseCase(repo)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: "c1",
		SenderID:       "u3",
		Content:        "hi",
	})

	assert.ErrorIs(t, err, chat.ErrNotParticipant)
	assert.Empty(t, repo.savedMessages())
}

func TestSendMessageBlankContentIsNoWrite(t *testing.T) {
	repo := newFakeRepo()
	repo.addConversation("c1", "u1", "u2")
	uc := NewSendMessageUseCase(repo)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: "c1",
		SenderID:       "u1",
		Content:        "   \t ",
	})

	assert.ErrorIs(t, err, chat.ErrEmptyContent)
	assert.Empty(t, repo.savedMessages())
}

func TestSendMessageWrapsPersistenceFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.addConversation("c1", "u1", "u2")
	repo.failSave = true
	uc := NewSendMessageUseCase(repo)

	_, err := uc.Execute(context.Background(), SendMessageInput{
		ConversationID: "c1",
		SenderID:       "u1",
		Content:        "hi",
	})

	assert.ErrorIs(t, err, ErrPersistence)
}

func TestSendMessagePreservesPerSenderOrder(t *testing.T) {
	repo := newFakeRepo()
	repo.addConversation("c1", "u1", "u2")
	uc := NewSendMessageUseCase(repo)

	for i := 0; i < 5; i++ {
		_, err := uc.Execute(context.Background(), SendMessageInput{
			ConversationID: "c1",
			SenderID:       "u1",
			Content:        fmt.Sprintf("msg-%d", i),
		})
		require.NoError(t, err)
	}

	saved := repo.savedMessages()
	require.Len(t, saved, 5)
	for i, m := range saved {
		assert.Equal(t, fmt.Sprintf("msg-%d", i), m.Content)
	}
}
