package core

import "github.com/akorchagin/pairchat-server/internal/store"

// EventKind identifies the type of an event delivered to clients.
type EventKind string

const (
	// EventDirectMessage is pushed to both participants when a message is
	// appended to their conversation.
	EventDirectMessage EventKind = "dm"
)

// Event is a realtime notification fanned out to connected clients.
type Event struct {
	Kind           EventKind
	ConversationID string
	Message        store.ResolvedMessage
}
