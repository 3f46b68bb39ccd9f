package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/auth"
	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/application/usecase"
	repository "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/persistence/repository/port"
)

// CreateConversationController handles the conversation creation endpoint
// (one controller per endpoint).
type CreateConversationController struct {
	UC *usecase.CreateConversationUseCase
}

func NewCreateConversationController(repo repository.ChatRepository) *CreateConversationController {
	return &CreateConversationController{UC: usecase.NewCreateConversationUseCase(repo)}
}

type createConversationRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
}

func (h *CreateConversationController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := auth.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var req createConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		conv, err := h.UC.Execute(ctx, usecase.CreateConversationInput{
			CreatorID: userID,
			PeerID:    req.ParticipantID,
		})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, conv)
	}
}
