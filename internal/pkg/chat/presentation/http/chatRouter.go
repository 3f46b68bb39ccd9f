package http

import (
	"github.com/gin-gonic/gin"

	qport "github.com/elisialandprogram-eng/CareConnect-sub000/internal/infrastructure/queue/port"
	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/infrastructure/realtime"
	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/auth"
	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/presentation/controller"
	repository "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/persistence/repository/port"
)

// RegisterRoutes mounts the chat endpoints. The websocket path and the
// gateway paths are unversioned for compatibility with the deployed
// clients, so routes hang off the engine root rather than an /api group.
// queueClient may be nil; the async REST send path is then not mounted.
func RegisterRoutes(r *gin.Engine, repo repository.ChatRepository, verifier *auth.Verifier, hub *realtime.Hub, queueClient qport.Client) {
	socketCtl := controller.NewChatSocketController(repo, verifier, hub)

	// GET /ws/chat -> websocket endpoint; auth happens in-band post-connect
	r.GET("/ws/chat", socketCtl.Handle())

	guarded := r.Group("/", auth.Middleware(verifier))

	// POST /conversations -> open a thread with another user
	guarded.POST("/conversations", controller.NewCreateConversationController(repo).Handle())

	// GET /conversations -> the caller's threads, most recent first
	guarded.GET("/conversations", controller.NewListConversationsController(repo).Handle())

	// GET /messages?conversationId= -> history for UI hydration
	guarded.GET("/messages", controller.NewGetMessagesController(repo).Handle())

	if queueClient != nil {
		// POST /conversations/:conversationId/messages -> async send via queue
		guarded.POST("/conversations/:conversationId/messages", controller.NewEnqueueMessageController(queueClient).Handle())
	}
}
