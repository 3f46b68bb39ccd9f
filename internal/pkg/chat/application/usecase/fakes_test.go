package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	chat "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/domain"
)

// fakeRepo is an in-memory ChatRepository for use case tests.
type fakeRepo struct {
	mu            sync.Mutex
	conversations map[string]chat.Conversation
	saved         []chat.Message
	nextID        int

	failSave bool
	failRead bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{conversations: map[string]chat.Conversation{}}
}

func (f *fakeRepo) addConversation(id, userOne, userTwo string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now().UTC()
	f.conversations[id] = chat.Conversation{
		ID: id, UserOneID: userOne, UserTwoID: userTwo,
		CreatedAt: now, UpdatedAt: now,
	}
}

func (f *fakeRepo) CreateConversation(ctx context.Context, c chat.Conversation) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return "", fmt.Errorf("boom")
	}
	f.nextID++
	id := fmt.Sprintf("conv-%d", f.nextID)
	c.ID = id
	f.conversations[id] = c
	return id, nil
}

func (f *fakeRepo) GetConversation(ctx context.Context, id string) (*chat.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.conversations[id]
	if !ok {
		return nil, chat.ErrNotFound
	}
	return &c, nil
}

func (f *fakeRepo) ListConversationsByUser(ctx context.Context, userID string) ([]chat.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead {
		return nil, fmt.Errorf("boom")
	}
	var out []chat.Conversation
	for _, c := range f.conversations {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeRepo) SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return nil, fmt.Errorf("boom")
	}
	f.nextID++
	m.ID = fmt.Sprintf("msg-%d", f.nextID)
	m.CreatedAt = time.Now().UTC()
	f.saved = append(f.saved, m)
	return &m, nil
}

func (f *fakeRepo) GetMessagesByConversation(ctx context.Context, conversationID string, limit int, offset int) ([]chat.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead {
		return nil, fmt.Errorf("boom")
	}
	var out []chat.Message
	for _, m := range f.saved {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) IsParticipant(ctx context.Context, conversationID string, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead {
		return false, fmt.Errorf("boom")
	}
	c, ok := f.conversations[conversationID]
	if !ok {
		return false, nil
	}
	return c.HasParticipant(userID), nil
}

func (f *fakeRepo) ListParticipantIDs(ctx context.Context, conversationID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.conversations[conversationID]
	if !ok {
		return nil, chat.ErrNotFound
	}
	return c.ParticipantIDs(), nil
}

func (f *fakeRepo) savedMessages() []chat.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]chat.Message, len(f.saved))
	copy(out, f.saved)
	return out
}
