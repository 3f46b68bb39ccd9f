package controller

import (
	"encoding/json"

	chat "github.com/elisialandprogram-eng/CareConnect-sub000/internal/pkg/chat/domain"
)

// frameKind discriminates the known client event kinds. Anything the
// server does not recognize decodes to frameUnknown and is dropped,
// keeping the protocol forward-compatible.
type frameKind int

const (
	frameUnknown frameKind = iota
	frameAuth
	frameMessage
)

// inboundFrame is the tagged union parsed at the socket boundary so the
// dispatch switch is exhaustive instead of ad hoc field checks.
type inboundFrame struct {
	kind           frameKind
	Token          string
	ConversationID string
	Content        string
}

type rawInbound struct {
	Type           string `json:"type"`
	Token          string `json:"token"`
	ConversationID string `json:"conversationId"`
	Content        string `json:"content"`
}

func decodeInbound(data []byte) (inboundFrame, error) {
	var raw rawInbound
	if err := json.Unmarshal(data, &raw); err != nil {
		return inboundFrame{}, err
	}

	f := inboundFrame{
		Token:          raw.Token,
		ConversationID: raw.ConversationID,
		Content:        raw.Content,
	}
	switch raw.Type {
	case "auth":
		f.kind = frameAuth
	case "message":
		f.kind = frameMessage
	default:
		f.kind = frameUnknown
	}
	return f, nil
}

// messageEnvelope wraps a persisted message for delivery to clients.
type messageEnvelope struct {
	Type string       `json:"type"`
	Data chat.Message `json:"data"`
}

func encodeMessage(m chat.Message) ([]byte, error) {
	return json.Marshal(messageEnvelope{Type: "message", Data: m})
}
