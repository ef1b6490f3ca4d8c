package core

// Client is a live connection as seen by the hub. One user may hold several
// clients (multiple tabs or devices); each receives its own event stream.
type Client struct {
	ID     string
	UserID string
	Events chan *Event
}

// NewClient constructs a client with an initialized event channel.
func NewClient(id, userID string) *Client {
	return &Client{
		ID:     id,
		UserID: userID,
		Events: make(chan *Event, 16),
	}
}
