// Package jsonfile implements the store interfaces on top of plain JSON
// files, one per collection, emulating a small subset of document-database
// semantics: predicate queries, unordered-pair upsert and append-only
// embedded documents. There is no database engine underneath; correctness
// under concurrent access comes from the per-collection critical section in
// collection.go.
package jsonfile

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/akorchagin/pairchat-server/internal/store"
)

// Store persists users and conversations under a single data directory.
type Store struct {
	users         *collection[store.User]
	conversations *collection[store.Conversation]
}

var _ store.Store = (*Store)(nil)

// New opens (or initializes) a jsonfile store rooted at dir. Missing
// collection files are created empty.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	s := &Store{
		users:         newCollection[store.User](dir, "users"),
		conversations: newCollection[store.Conversation](dir, "conversations"),
	}
	if err := s.users.init(); err != nil {
		return nil, err
	}
	if err := s.conversations.init(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close implements store.Store. The jsonfile store holds no open handles
// between operations.
func (s *Store) Close() error { return nil }

func userByUsername(username string) Predicate[store.User] {
	return Equals[store.User, string]{
		Field: func(u store.User) string { return u.Username },
		Value: username,
	}
}

func userByID(id string) Predicate[store.User] {
	return Equals[store.User, string]{
		Field: func(u store.User) string { return u.ID },
		Value: id,
	}
}

func conversationParticipants(c store.Conversation) []string { return c.Participants }

// CreateUser implements store.UserStore. Uniqueness is checked inside the
// collection critical section, so two racing signups with the same username
// cannot both succeed.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*store.User, error) {
	var created store.User
	err := s.users.update(func(users []store.User) ([]store.User, error) {
		if _, exists := findOne(users, userByUsername(username)); exists {
			return nil, store.ErrUsernameTaken
		}
		now := time.Now().UTC()
		created = store.User{
			ID:           newID(),
			Username:     username,
			PasswordHash: passwordHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return append(users, created), nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetUserByID implements store.UserStore.
func (s *Store) GetUserByID(ctx context.Context, id string) (*store.User, error) {
	users, err := s.users.load()
	if err != nil {
		return nil, err
	}
	u, ok := findOne(users, userByID(id))
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

// GetUserByUsername implements store.UserStore.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*store.User, error) {
	users, err := s.users.load()
	if err != nil {
		return nil, err
	}
	u, ok := findOne(users, userByUsername(username))
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

// ListUsers implements store.UserStore.
func (s *Store) ListUsers(ctx context.Context) ([]*store.User, error) {
	users, err := s.users.load()
	if err != nil {
		return nil, err
	}
	out := make([]*store.User, 0, len(users))
	for i := range users {
		out = append(out, &users[i])
	}
	return out, nil
}

// FindOrCreateConversation implements store.ConversationStore. The lookup
// uses contains-all over the participants array, so {A,B} and {B,A} resolve
// to the same conversation. Lookup and create run in one critical section,
// keeping the operation idempotent under concurrent calls.
func (s *Store) FindOrCreateConversation(ctx context.Context, userA, userB string) (*store.Conversation, error) {
	var result store.Conversation
	err := s.conversations.update(func(convs []store.Conversation) ([]store.Conversation, error) {
		pair := ArrayContainsAll[store.Conversation, string]{
			Field:  conversationParticipants,
			Values: []string{userA, userB},
		}
		if existing, ok := findOne(convs, pair); ok {
			result = existing
			return convs, nil
		}
		now := time.Now().UTC()
		result = store.Conversation{
			ID:           newID(),
			Participants: []string{userA, userB},
			Messages:     []store.Message{},
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return append(convs, result), nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AppendMessage implements store.ConversationStore. The whole
// load-locate-append-persist cycle runs inside the collection critical
// section; message timestamps are assigned under the lock, so they are
// monotonically non-decreasing within a conversation.
func (s *Store) AppendMessage(ctx context.Context, conversationID, senderID, content string) (*store.Message, error) {
	var appended store.Message
	err := s.conversations.update(func(convs []store.Conversation) ([]store.Conversation, error) {
		for i := range convs {
			if convs[i].ID != conversationID {
				continue
			}
			now := time.Now().UTC()
			appended = store.Message{
				Sender:    senderID,
				Content:   content,
				Timestamp: now,
			}
			convs[i].Messages = append(convs[i].Messages, appended)
			convs[i].UpdatedAt = now
			return convs, nil
		}
		return nil, store.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &appended, nil
}

// ListConversationsForUser implements store.ConversationStore.
func (s *Store) ListConversationsForUser(ctx context.Context, userID string) ([]*store.Conversation, error) {
	convs, err := s.conversations.load()
	if err != nil {
		return nil, err
	}
	matched := findAll(convs, ArrayContains[store.Conversation, string]{
		Field: conversationParticipants,
		Value: userID,
	})
	out := make([]*store.Conversation, 0, len(matched))
	for i := range matched {
		out = append(out, &matched[i])
	}
	return out, nil
}
