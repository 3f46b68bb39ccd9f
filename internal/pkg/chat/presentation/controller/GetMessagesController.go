package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/auth"
	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/application/usecase"
	chat "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/domain"
	repository "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/persistence/repository/port"
)

// GetMessagesController serves message history for UI hydration; the live
// socket only carries new messages going forward.
type GetMessagesController struct {
	UC *usecase.GetMessagesUseCase
}

func NewGetMessagesController(repo repository.ChatRepository) *GetMessagesController {
	return &GetMessagesController{UC: usecase.NewGetMessagesUseCase(repo)}
}

func (h *GetMessagesController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		conversationID := c.Query("conversationId")
		if conversationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
			return
		}

		// Defaults
		limit := 50
		offset := 0
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}
		if v := c.Query("offset"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				offset = n
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		msgs, err := h.UC.Execute(ctx, usecase.GetMessagesInput{
			ConversationID: conversationID,
			RequesterID:    userID,
			Limit:          limit,
			Offset:         offset,
		})
		if err != nil {
			status := http.StatusBadRequest
			switch {
			case errors.Is(err, chat.ErrNotParticipant):
				status = http.StatusForbidden
			case errors.Is(err, usecase.ErrPersistence):
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"messages": msgs,
			"limit":    limit,
			"offset":   offset,
			"count":    len(msgs),
		})
	}
}
