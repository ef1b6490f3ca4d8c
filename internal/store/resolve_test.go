package store

import (
	"testing"
	"time"
)

func testUsers() []*User {
	return []*User{
		{ID: "a", Username: "alice"},
		{ID: "b", Username: "bob"},
	}
}

func TestResolveConversation_ExpandsParticipantsAndSenders(t *testing.T) {
	r := NewResolver(testUsers())
	conv := &Conversation{
		ID:           "c1",
		Participants: []string{"a", "b"},
		Messages: []Message{
			{Sender: "a", Content: "hi", Timestamp: time.Unix(1700000000, 0).UTC()},
		},
		CreatedAt: time.Unix(1700000000, 0).UTC(),
		UpdatedAt: time.Unix(1700000000, 0).UTC(),
	}

	resolved := r.ResolveConversation(conv, ResolveSpec{Participants: true, MessageSenders: true})

	if len(resolved.Participants) != 2 {
		t.Fatalf("expected 2 participants, got %d", len(resolved.Participants))
	}
	if resolved.Participants[0] != (UserRef{ID: "a", Username: "alice"}) {
		t.Errorf("unexpected first participant: %+v", resolved.Participants[0])
	}
	if resolved.Participants[1] != (UserRef{ID: "b", Username: "bob"}) {
		t.Errorf("unexpected second participant: %+v", resolved.Participants[1])
	}
	if len(resolved.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(resolved.Messages))
	}
	if resolved.Messages[0].Sender != (UserRef{ID: "a", Username: "alice"}) {
		t.Errorf("unexpected sender: %+v", resolved.Messages[0].Sender)
	}
}

func TestResolve_MissingReferenceFallsBackToUnknown(t *testing.T) {
	r := NewResolver(testUsers())
	conv := &Conversation{
		ID:           "c1",
		Participants: []string{"a", "ghost"},
		Messages: []Message{
			{Sender: "ghost", Content: "boo", Timestamp: time.Now()},
		},
	}

	resolved := r.ResolveConversation(conv, ResolveSpec{Participants: true, MessageSenders: true})

	if resolved.Participants[1] != (UserRef{ID: "ghost", Username: UnknownUsername}) {
		t.Errorf("expected Unknown placeholder, got %+v", resolved.Participants[1])
	}
	if resolved.Messages[0].Sender != (UserRef{ID: "ghost", Username: UnknownUsername}) {
		t.Errorf("expected Unknown sender placeholder, got %+v", resolved.Messages[0].Sender)
	}
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	r := NewResolver(testUsers())
	conv := &Conversation{
		ID:           "c1",
		Participants: []string{"a", "b"},
		Messages: []Message{
			{Sender: "a", Content: "hi", Timestamp: time.Now()},
		},
	}

	_ = r.ResolveConversation(conv, ResolveSpec{Participants: true, MessageSenders: true})

	if conv.Participants[0] != "a" || conv.Participants[1] != "b" {
		t.Errorf("participants mutated: %v", conv.Participants)
	}
	if conv.Messages[0].Sender != "a" {
		t.Errorf("message sender mutated: %v", conv.Messages[0].Sender)
	}
}

func TestResolveConversations_PreservesOrder(t *testing.T) {
	r := NewResolver(testUsers())
	convs := []*Conversation{
		{ID: "c1", Participants: []string{"a", "b"}},
		{ID: "c2", Participants: []string{"b", "a"}},
	}

	resolved := r.ResolveConversations(convs, ResolveSpec{Participants: true})
	if len(resolved) != 2 || resolved[0].ID != "c1" || resolved[1].ID != "c2" {
		t.Fatalf("order not preserved: %+v", resolved)
	}
}
