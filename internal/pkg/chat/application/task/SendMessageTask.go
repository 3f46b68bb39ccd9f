package task

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	qport "github.com/elisialandprogram-eng/CareConnect-sub000/internal/infrastructure/queue/port"
	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/application/usecase"
	chat "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/domain"
	repository "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/persistence/repository/port"
)

// SendMessageTaskType is the queue task name for the asynchronous REST
// send path. The websocket path persists inline and never enqueues.
const SendMessageTaskType = "chat:send_message"

// SendMessageTaskPayload is the JSON payload transported via the queue.
// Kept decoupled from domain types to avoid tight coupling with JSON tags.
type SendMessageTaskPayload struct {
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	Content        string `json:"content"`
}

// RegisterSendMessageTask binds the task handler to the provided server.
// Domain rejections (blank content, non-participant sender) are logged
// and swallowed so the queue does not retry what can never succeed.
func RegisterSendMessageTask(srv qport.Server, repo repository.ChatRepository) {
	uc := usecase.NewSendMessageUseCase(repo)

	srv.Register(SendMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var p SendMessageTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		// give DB a reasonable time budget per task execution
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		_, err := uc.Execute(ctx, usecase.SendMessageInput{
			ConversationID: p.ConversationID,
			SenderID:       p.SenderID,
			Content:        p.Content,
		})
		switch {
		case err == nil:
			return nil
		case errors.Is(err, chat.ErrEmptyContent), errors.Is(err, chat.ErrNotParticipant):
			slog.Warn("chat task rejected", "task", SendMessageTaskType, "conversation_id", p.ConversationID, "err", err)
			return nil
		default:
			// persistence errors are retried per the adapter's policy
			return err
		}
	})
}
