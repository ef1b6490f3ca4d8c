package core

import "context"

// Hub routes events to connected clients, keyed by user id. All state is
// owned by the Run loop; registration and publishing go through channels.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	publish    chan *delivery
	done       chan struct{}
}

type delivery struct {
	userIDs []string
	event   *Event
}

// NewHub creates a new hub instance.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan *delivery, 64),
		done:       make(chan struct{}),
	}
}

// RegisterClient attaches a client to the hub. No-op after shutdown.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// UnregisterClient detaches a client and closes its event channel.
// No-op after shutdown (Run already closed every client channel).
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish delivers an event to every live client of the given users.
// Delivery is best effort: users without connections simply miss the push
// and catch up over HTTP.
func (h *Hub) Publish(userIDs []string, event *Event) {
	select {
	case h.publish <- &delivery{userIDs: userIDs, event: event}:
	case <-h.done:
	default:
		// hub backlog full, drop the push
	}
}

// Run processes hub traffic until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	clients := make(map[string]map[*Client]struct{})

	defer func() {
		close(h.done)
		for _, set := range clients {
			for c := range set {
				close(c.Events)
			}
		}
	}()

	for {
		select {
		case c := <-h.register:
			set, ok := clients[c.UserID]
			if !ok {
				set = make(map[*Client]struct{})
				clients[c.UserID] = set
			}
			set[c] = struct{}{}
		case c := <-h.unregister:
			if set, ok := clients[c.UserID]; ok {
				if _, present := set[c]; present {
					delete(set, c)
					close(c.Events)
					if len(set) == 0 {
						delete(clients, c.UserID)
					}
				}
			}
		case d := <-h.publish:
			for _, userID := range d.userIDs {
				for c := range clients[userID] {
					select {
					case c.Events <- d.event:
					default:
						// slow consumer, skip
					}
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
