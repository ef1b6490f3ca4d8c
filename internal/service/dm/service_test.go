package dm

import (
	"context"
	"errors"
	"testing"

	"github.com/akorchagin/pairchat-server/internal/store"
	"github.com/akorchagin/pairchat-server/internal/store/jsonfile"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()

	st, err := jsonfile.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	return New(st, nil), st
}

func createUser(t *testing.T, st store.Store, username string) *store.User {
	t.Helper()

	u, err := st.CreateUser(context.Background(), username, "hash")
	if err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return u
}

func TestFindOrCreate_RejectsSelfConversation(t *testing.T) {
	svc, st := newTestService(t)
	alice := createUser(t, st, "alice")

	if _, err := svc.FindOrCreate(context.Background(), alice.ID, alice.ID); !errors.Is(err, ErrSelfConversation) {
		t.Fatalf("expected ErrSelfConversation, got %v", err)
	}
}

func TestFindOrCreate_RejectsUnknownRecipient(t *testing.T) {
	svc, st := newTestService(t)
	alice := createUser(t, st, "alice")

	if _, err := svc.FindOrCreate(context.Background(), alice.ID, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSend_RejectsEmptyContent(t *testing.T) {
	svc, st := newTestService(t)
	alice := createUser(t, st, "alice")
	bob := createUser(t, st, "bob")

	if _, _, err := svc.Send(context.Background(), alice.ID, bob.ID, "   "); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}

func TestDirectMessagingScenario(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	alice := createUser(t, st, "alice")
	bob := createUser(t, st, "bob")

	// First contact creates the conversation with an empty message log.
	c1, err := svc.FindOrCreate(ctx, alice.ID, bob.ID)
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}
	if len(c1.Messages) != 0 {
		t.Fatalf("expected empty message log, got %d", len(c1.Messages))
	}

	// Reversed order returns the same conversation.
	c2, err := svc.FindOrCreate(ctx, bob.ID, alice.ID)
	if err != nil {
		t.Fatalf("FindOrCreate (reversed) failed: %v", err)
	}
	if c2.ID != c1.ID {
		t.Fatalf("expected same conversation, got %s and %s", c1.ID, c2.ID)
	}

	msg, conv, err := svc.Send(ctx, alice.ID, bob.ID, "hi")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if conv.ID != c1.ID {
		t.Fatalf("send created a new conversation: %s vs %s", conv.ID, c1.ID)
	}
	if msg.Sender != alice.ID || msg.Content != "hi" {
		t.Fatalf("unexpected message: %+v", msg)
	}

	listed, err := svc.ListForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(listed))
	}

	got := listed[0]
	if got.ID != c1.ID {
		t.Errorf("expected conversation %s, got %s", c1.ID, got.ID)
	}
	wantParticipants := map[string]string{alice.ID: "alice", bob.ID: "bob"}
	if len(got.Participants) != 2 {
		t.Fatalf("expected 2 resolved participants, got %d", len(got.Participants))
	}
	for _, p := range got.Participants {
		if wantParticipants[p.ID] != p.Username {
			t.Errorf("unexpected participant projection: %+v", p)
		}
	}
	if len(got.Messages) != 1 {
		t.Fatalf("expected 1 resolved message, got %d", len(got.Messages))
	}
	sender := got.Messages[0].Sender
	if sender.ID != alice.ID || sender.Username != "alice" {
		t.Errorf("expected sender resolved to alice, got %+v", sender)
	}
}

func TestListForUser_ExcludesOtherConversations(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	alice := createUser(t, st, "alice")
	bob := createUser(t, st, "bob")
	carol := createUser(t, st, "carol")

	if _, _, err := svc.Send(ctx, alice.ID, bob.ID, "hey bob"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if _, _, err := svc.Send(ctx, bob.ID, carol.ID, "hey carol"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	listed, err := svc.ListForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected 1 conversation for alice, got %d", len(listed))
	}
	if len(listed[0].Messages) != 1 || listed[0].Messages[0].Content != "hey bob" {
		t.Errorf("unexpected conversation contents: %+v", listed[0])
	}
}
