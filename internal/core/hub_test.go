package core

import (
	"context"
	"testing"
	"time"

	"github.com/akorchagin/pairchat-server/internal/store"
)

func startHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func recvEvent(t *testing.T, c *Client) *Event {
	t.Helper()

	select {
	case ev := <-c.Events:
		return ev
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
		return nil
	}
}

func TestHub_DeliversToAllParticipantClients(t *testing.T) {
	hub := startHub(t)

	aliceTab1 := NewClient("c1", "alice")
	aliceTab2 := NewClient("c2", "alice")
	bob := NewClient("c3", "bob")
	carol := NewClient("c4", "carol")

	hub.RegisterClient(aliceTab1)
	hub.RegisterClient(aliceTab2)
	hub.RegisterClient(bob)
	hub.RegisterClient(carol)

	event := &Event{
		Kind:           EventDirectMessage,
		ConversationID: "conv1",
		Message: store.ResolvedMessage{
			Sender:  store.UserRef{ID: "alice", Username: "alice"},
			Content: "hi",
		},
	}
	hub.Publish([]string{"alice", "bob"}, event)

	for _, c := range []*Client{aliceTab1, aliceTab2, bob} {
		got := recvEvent(t, c)
		if got.ConversationID != "conv1" || got.Message.Content != "hi" {
			t.Errorf("client %s got unexpected event: %+v", c.ID, got)
		}
	}

	select {
	case ev := <-carol.Events:
		t.Errorf("carol should not receive the event, got %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesEventChannel(t *testing.T) {
	hub := startHub(t)

	c := NewClient("c1", "alice")
	hub.RegisterClient(c)
	hub.UnregisterClient(c)

	select {
	case _, ok := <-c.Events:
		if ok {
			t.Fatalf("expected closed channel, got event")
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for channel close")
	}
}

func TestHub_PublishToOfflineUserIsNoop(t *testing.T) {
	hub := startHub(t)

	// Must not block or panic with nobody connected.
	hub.Publish([]string{"nobody"}, &Event{Kind: EventDirectMessage})
}
