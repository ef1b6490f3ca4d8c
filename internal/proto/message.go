package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeDM = "dm"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"
)

// DMData is a direct message sent by the client over the socket.
type DMData struct {
	To      string `json:"to"`
	Content string `json:"content"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// UserRef identifies a user inside an event payload.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// EventDirectMessage notifies a participant about a new message.
type EventDirectMessage struct {
	ConversationID string  `json:"conversation_id"`
	Sender         UserRef `json:"sender"`
	Content        string  `json:"content"`
	Timestamp      string  `json:"ts"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
