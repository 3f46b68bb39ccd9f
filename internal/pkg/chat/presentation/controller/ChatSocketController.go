package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/infrastructure/realtime"
	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/auth"
	"github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/application/usecase"
	chat "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/domain"
	repository "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/persistence/repository/port"
)

// ChatSocketController handles the /ws/chat endpoint for realtime chat
// traffic. Sockets come up unauthenticated; the first thing a client must
// do is prove its identity with an auth frame. Chat frames arriving
// before that are dropped without any observable side effect.
type ChatSocketController struct {
	hub             *realtime.Hub
	verifier        *auth.Verifier
	sendMessageUC   *usecase.SendMessageUseCase
	listMembersUC   *usecase.ListParticipantsUseCase
	inflightTimeout time.Duration
}

func NewChatSocketController(repo repository.ChatRepository, verifier *auth.Verifier, hub *realtime.Hub) *ChatSocketController {
	return &ChatSocketController{
		hub:             hub,
		verifier:        verifier,
		sendMessageUC:   usecase.NewSendMessageUseCase(repo),
		listMembersUC:   usecase.NewListParticipantsUseCase(repo),
		inflightTimeout: 5 * time.Second,
	}
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Tokens are verified post-connect, so the upgrade itself is open.
		return true
	},
}

const defaultReadTimeout = 60 * time.Second

// Handle upgrades HTTP connections to websocket and processes frames
// until the client disconnects or fails authentication.
func (ctl *ChatSocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just return.
			return
		}

		conn := realtime.NewConnection(ws)
		ctl.hub.Register(conn)
		conn.Start()
		defer func() {
			ctl.hub.Unregister(conn)
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) &&
					!errors.Is(err, websocket.ErrCloseSent) {
					slog.Debug("chat socket read ended", "session_id", conn.SessionID(), "err", err)
				}
				return
			}
			_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))

			frame, err := decodeInbound(data)
			if err != nil {
				// Malformed JSON is logged and dropped; the socket stays open.
				slog.Warn("chat socket dropped malformed frame", "session_id", conn.SessionID(), "err", err)
				continue
			}

			switch frame.kind {
			case frameAuth:
				if !ctl.handleAuth(c.Request.Context(), conn, frame) {
					return
				}
			case frameMessage:
				ctl.handleMessage(c.Request.Context(), conn, frame)
			case frameUnknown:
				// Forward-compatible no-op.
			}
		}
	}
}

// handleAuth verifies the supplied token and binds the identity to the
// session. Reports false when the socket was closed and reading must stop.
func (ctl *ChatSocketController) handleAuth(parent context.Context, conn *realtime.Connection, frame inboundFrame) bool {
	ctx, cancel := context.WithTimeout(parent, ctl.inflightTimeout)
	defer cancel()

	claims, err := ctl.verifier.Verify(ctx, frame.Token)
	if err != nil {
		conn.Close(websocket.ClosePolicyViolation, "Invalid token")
		return false
	}

	// Bind is once-per-session; a repeated auth frame on an already
	// identified socket is ignored rather than rebound.
	ctl.hub.Bind(conn, claims.UserID)
	return true
}

// handleMessage persists an inbound chat frame and fans the stored
// message out to every connected session of the conversation's
// participants. Unauthenticated senders and blank content are no-ops;
// persistence failures are logged server-side and the frame is dropped.
func (ctl *ChatSocketController) handleMessage(parent context.Context, conn *realtime.Connection, frame inboundFrame) {
	senderID, ok := ctl.hub.UserID(conn)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(parent, ctl.inflightTimeout)
	defer cancel()

	msg, err := ctl.sendMessageUC.Execute(ctx, usecase.SendMessageInput{
		ConversationID: frame.ConversationID,
		SenderID:       senderID,
		Content:        frame.Content,
	})
	if err != nil {
		if errors.Is(err, chat.ErrEmptyContent) {
			return
		}
		if errors.Is(err, chat.ErrNotParticipant) {
			slog.Warn("chat message from non-participant dropped", "session_id", conn.SessionID(), "conversation_id", frame.ConversationID)
			return
		}
		slog.Error("chat message not persisted", "session_id", conn.SessionID(), "conversation_id", frame.ConversationID, "err", err)
		return
	}

	payload, err := encodeMessage(*msg)
	if err != nil {
		slog.Error("chat message not encoded", "message_id", msg.ID, "err", err)
		return
	}

	participants, err := ctl.listMembersUC.Execute(ctx, usecase.ListParticipantsInput{ConversationID: msg.ConversationID})
	if err != nil {
		slog.Error("chat fan-out skipped", "message_id", msg.ID, "err", err)
		return
	}

	members := make(map[string]struct{}, len(participants))
	for _, id := range participants {
		members[id] = struct{}{}
	}
	ctl.hub.Broadcast(payload, func(userID string) bool {
		_, ok := members[userID]
		return ok
	})
}
