// Package dm holds the business rules for two-party conversations:
// find-or-create by unordered pair, message appends and resolved listings.
package dm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/akorchagin/pairchat-server/internal/core"
	"github.com/akorchagin/pairchat-server/internal/metrics"
	"github.com/akorchagin/pairchat-server/internal/store"
)

// Common errors for conversation operations.
var (
	ErrSelfConversation = errors.New("cannot start a conversation with yourself")
	ErrEmptyContent     = errors.New("message content is empty")
	ErrUserNotFound     = errors.New("user not found")
)

// Service provides direct-messaging business logic.
type Service struct {
	store store.Store
	hub   *core.Hub
}

// New creates a new DM service. The hub may be nil when realtime push is
// not wired (tests, batch tooling).
func New(st store.Store, hub *core.Hub) *Service {
	return &Service{
		store: st,
		hub:   hub,
	}
}

// FindOrCreate returns the single conversation for the unordered pair
// {fromUserID, toUserID}, creating it if absent. Both users must exist and
// be distinct.
func (s *Service) FindOrCreate(ctx context.Context, fromUserID, toUserID string) (*store.Conversation, error) {
	if fromUserID == toUserID {
		return nil, ErrSelfConversation
	}
	if _, err := s.store.GetUserByID(ctx, toUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup recipient: %w", err)
	}

	conv, err := s.store.FindOrCreateConversation(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, fmt.Errorf("find or create conversation: %w", err)
	}
	if len(conv.Messages) == 0 {
		metrics.ConversationsTotal.Inc()
	}
	return conv, nil
}

// Send appends a message from fromUserID into the pair conversation with
// toUserID, creating the conversation on first contact, and fans the
// message out to both participants' live connections.
func (s *Service) Send(ctx context.Context, fromUserID, toUserID, content string) (*store.Message, *store.Conversation, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil, ErrEmptyContent
	}

	conv, err := s.FindOrCreate(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, nil, err
	}

	msg, err := s.store.AppendMessage(ctx, conv.ID, fromUserID, content)
	if err != nil {
		return nil, nil, fmt.Errorf("append message: %w", err)
	}
	metrics.MessagesTotal.Inc()

	s.notify(ctx, conv, msg)
	return msg, conv, nil
}

// ListForUser returns the user's conversations with participants and
// message senders resolved to {id, username} projections.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]store.ResolvedConversation, error) {
	convs, err := s.store.ListConversationsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	resolver := store.NewResolver(users)
	return resolver.ResolveConversations(convs, store.ResolveSpec{
		Participants:   true,
		MessageSenders: true,
	}), nil
}

// notify pushes the appended message to every participant's live clients.
func (s *Service) notify(ctx context.Context, conv *store.Conversation, msg *store.Message) {
	if s.hub == nil {
		return
	}

	sender := store.UserRef{ID: msg.Sender, Username: store.UnknownUsername}
	if u, err := s.store.GetUserByID(ctx, msg.Sender); err == nil {
		sender = store.UserRef{ID: u.ID, Username: u.Username}
	}

	s.hub.Publish(conv.Participants, &core.Event{
		Kind:           core.EventDirectMessage,
		ConversationID: conv.ID,
		Message: store.ResolvedMessage{
			Sender:    sender,
			Content:   msg.Content,
			Timestamp: msg.Timestamp.Format(store.TimeLayout),
		},
	})
}
