package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	queueport "github.com/elisialandprogram-eng/CareConnect-sub000/internal/infrastructure/queue/port"
	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/auth"
	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/application/task"
)

// EnqueueMessageController accepts a message over REST and hands it to the
// background queue. Useful for clients without a live socket; delivery to
// connected peers still happens on their next history fetch.
type EnqueueMessageController struct {
	Q queueport.Client
}

func NewEnqueueMessageController(client queueport.Client) *EnqueueMessageController {
	return &EnqueueMessageController{Q: client}
}

type enqueueMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *EnqueueMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		conversationID := c.Param("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		var req enqueueMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		payload := task.SendMessageTaskPayload{
			ConversationID: conversationID,
			SenderID:       userID,
			Content:        req.Content,
		}
		b, err := json.Marshal(payload)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode task payload"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		opts := queueport.EnqueueOption{Queue: "chat", MaxRetry: 20}
		id, err := h.Q.Enqueue(ctx, queueport.Task{Type: task.SendMessageTaskType, Payload: b}, opts)
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to enqueue message"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{
			"status":         "queued",
			"taskId":         id,
			"conversationId": conversationID,
			"senderId":       userID,
		})
	}
}
