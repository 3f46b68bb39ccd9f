package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateConversationAssignsID(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateConversationUseCase(repo)

	conv, err := uc.Execute(context.Background(), CreateConversationInput{
		CreatorID: "u1",
		PeerID:    "u2",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, conv.ID)
	assert.Equal(t, "u1", conv.UserOneID)
	assert.Equal(t, "u2", conv.UserTwoID)
	assert.False(t, conv.CreatedAt.IsZero())
	assert.Equal(t, conv.CreatedAt, conv.UpdatedAt)
}

func TestCreateConversationValidatesParticipants(t *testing.T) {
	uc := NewCreateConversationUseCase(newFakeRepo())

	_, err := uc.Execute(context.Background(), CreateConversationInput{CreatorID: "", PeerID: "u2"})
	assert.Error(t, err)

	_, err = uc.Execute(context.Background(), CreateConversationInput{CreatorID: "u1", PeerID: "u1"})
	assert.Error(t, err)
}

func TestCreateConversationWrapsPersistenceFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.failSave = true
	uc := NewCreateConversationUseCase(repo)

	_, err := uc.Execute(context.Background(), CreateConversationInput{CreatorID: "u1", PeerID: "u2"})
	assert.ErrorIs(t, err, ErrPersistence)
}
