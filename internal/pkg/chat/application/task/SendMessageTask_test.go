package task

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qport "github.com/elisialandprogram-eng/CareConnect-sub000/internal/infrastructure/queue/port"
	chat "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/domain"
)

// fakeServer captures registered handlers so tests can invoke them directly.
type fakeServer struct {
	handlers map[string]qport.Handler
}

func newFakeServer() *fakeServer {
	return &fakeServer{handlers: map[string]qport.Handler{}}
}

func (f *fakeServer) Register(taskType string, h qport.Handler) { f.handlers[taskType] = h }
func (f *fakeServer) Run(ctx context.Context) error             { return nil }
func (f *fakeServer) Stop(ctx context.Context) error            { return nil }

// taskRepo is a minimal ChatRepository for the worker path.
type taskRepo struct {
	mu           sync.Mutex
	participants map[string][]string
	saved        []chat.Message
}

func (r *taskRepo) CreateConversation(ctx context.Context, c chat.Conversation) (string, error) {
	return "", nil
}

func (r *taskRepo) GetConversation(ctx context.Context, id string) (*chat.Conversation, error) {
	return nil, chat.ErrNotFound
}

func (r *taskRepo) ListConversationsByUser(ctx context.Context, userID string) ([]chat.Conversation, error) {
	return nil, nil
}

func (r *taskRepo) SaveMessage(ctx context.Context, m chat.Message) (*chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = "msg-1"
	m.CreatedAt = time.Now().UTC()
	r.saved = append(r.saved, m)
	return &m, nil
}

func (r *taskRepo) GetMessagesByConversation(ctx context.Context, conversationID string, limit int, offset int) ([]chat.Message, error) {
	return nil, nil
}

func (r *taskRepo) IsParticipant(ctx context.Context, conversationID string, userID string) (bool, error) {
	for _, id := range r.participants[conversationID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *taskRepo) ListParticipantIDs(ctx context.Context, conversationID string) ([]string, error) {
	return r.participants[conversationID], nil
}

func TestSendMessageTaskPersistsPayload(t *testing.T) {
	repo := &taskRepo{participants: map[string][]string{"c1": {"u1", "u2"}}}
	srv := newFakeServer()
	RegisterSendMessageTask(srv, repo)

	h, ok := srv.handlers[SendMessageTaskType]
	require.True(t, ok)

	payload, err := json.Marshal(SendMessageTaskPayload{
		ConversationID: "c1",
		SenderID:       "u1",
		Content:        "from the queue",
	})
	require.NoError(t, err)

	err = h(context.Background(), qport.Task{Type: SendMessageTaskType, Payload: payload})
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "from the queue", repo.saved[0].Content)
	assert.Equal(t, "u1", repo.saved[0].SenderID)
}

func TestSendMessageTaskMalformedPayloadErrors(t *testing.T) {
	srv := newFakeServer()
	RegisterSendMessageTask(srv, &taskRepo{})

	err := srv.handlers[SendMessageTaskType](context.Background(), qport.Task{
		Type:    SendMessageTaskType,
		Payload: []byte("{not json"),
	})

	assert.Error(t, err)
}

func TestSendMessageTaskSwallowsDomainRejections(t *testing.T) {
	repo := &taskRepo{participants: map[string][]string{"c1": {"u1", "u2"}}}
	srv := newFakeServer()
	RegisterSendMessageTask(srv, repo)
	h := srv.handlers[SendMessageTaskType]

	// blank content and an outsider sender are dead letters, not retries
	for _, p := range []SendMessageTaskPayload{
		{ConversationID: "c1", SenderID: "u1", Content: "   "},
		{ConversationID: "c1", SenderID: "u9", Content: "hi"},
	} {
		payload, err := json.Marshal(p)
		require.NoError(t, err)
		assert.NoError(t, h(context.Background(), qport.Task{Type: SendMessageTaskType, Payload: payload}))
	}

	assert.Empty(t, repo.saved)
}
