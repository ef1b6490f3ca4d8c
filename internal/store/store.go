package store

import (
	"context"
	"time"
)

// TimeLayout is the fixed text format for timestamps exposed to callers,
// ISO 8601 with millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Message is a single entry in a conversation. Messages have no identity
// outside the conversation that owns them and are never edited or removed.
type Message struct {
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a direct-messaging thread between exactly two users.
// Participants are stored as user ids; lookup treats the pair as unordered.
type Conversation struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	Messages     []Message `json:"messages"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasParticipant reports whether the given user id is one of the participants.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// UserStore handles user persistence.
type UserStore interface {
	// CreateUser creates a new user with hashed password.
	// Returns ErrUsernameTaken if the username already exists.
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)

	// GetUserByID retrieves a user by id. Returns ErrNotFound if absent.
	GetUserByID(ctx context.Context, id string) (*User, error)

	// GetUserByUsername retrieves a user by username. Returns ErrNotFound if absent.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// ListUsers returns all users in insertion order.
	ListUsers(ctx context.Context) ([]*User, error)
}

// ConversationStore handles conversation persistence. Every mutating
// operation runs as a single critical section over the backing collection,
// so two racing load-modify-persist cycles can never interleave.
type ConversationStore interface {
	// FindOrCreateConversation returns the conversation whose participants
	// equal the unordered pair {userA, userB}, creating it with an empty
	// message log if none exists. Idempotent in either argument order.
	FindOrCreateConversation(ctx context.Context, userA, userB string) (*Conversation, error)

	// AppendMessage appends a message with a store-assigned timestamp to the
	// conversation and refreshes its updated_at. Returns ErrNotFound if the
	// conversation does not exist.
	AppendMessage(ctx context.Context, conversationID, senderID, content string) (*Message, error)

	// ListConversationsForUser returns all conversations the user
	// participates in, preserving collection order.
	ListConversationsForUser(ctx context.Context, userID string) ([]*Conversation, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore
	ConversationStore

	// Close releases any resources held by the store.
	Close() error
}
