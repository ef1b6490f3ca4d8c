package store

// UnknownUsername is the sentinel display value substituted when a
// referenced user id no longer resolves.
const UnknownUsername = "Unknown"

// UserRef is the read-time projection embedded in place of a user id.
type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ResolvedMessage mirrors Message with the sender id expanded.
type ResolvedMessage struct {
	Sender    UserRef `json:"sender"`
	Content   string  `json:"content"`
	Timestamp string  `json:"timestamp"`
}

// ResolvedConversation mirrors Conversation with participant and sender ids
// expanded into user projections.
type ResolvedConversation struct {
	ID           string            `json:"id"`
	Participants []UserRef         `json:"participants"`
	Messages     []ResolvedMessage `json:"messages"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}

// ResolveSpec selects which relation fields a Resolver expands.
type ResolveSpec struct {
	Participants   bool
	MessageSenders bool
}

// Resolver expands user-id foreign keys against an in-memory user snapshot.
// It never touches storage and never mutates its inputs.
type Resolver struct {
	byID map[string]UserRef
}

// NewResolver builds a resolver from a snapshot of the Users collection.
func NewResolver(users []*User) *Resolver {
	byID := make(map[string]UserRef, len(users))
	for _, u := range users {
		byID[u.ID] = UserRef{ID: u.ID, Username: u.Username}
	}
	return &Resolver{byID: byID}
}

// Lookup returns the projection for a user id, substituting the Unknown
// placeholder when the id does not resolve. Callers always receive a
// structurally valid projection.
func (r *Resolver) Lookup(id string) UserRef {
	if ref, ok := r.byID[id]; ok {
		return ref
	}
	return UserRef{ID: id, Username: UnknownUsername}
}

// ResolveConversation returns a resolved copy of the conversation with the
// fields selected by spec expanded. Unselected relation fields are still
// emitted as projections carrying only the id, keeping the output shape
// uniform for callers.
func (r *Resolver) ResolveConversation(c *Conversation, spec ResolveSpec) ResolvedConversation {
	out := ResolvedConversation{
		ID:           c.ID,
		Participants: make([]UserRef, 0, len(c.Participants)),
		Messages:     make([]ResolvedMessage, 0, len(c.Messages)),
		CreatedAt:    c.CreatedAt.Format(TimeLayout),
		UpdatedAt:    c.UpdatedAt.Format(TimeLayout),
	}

	for _, id := range c.Participants {
		if spec.Participants {
			out.Participants = append(out.Participants, r.Lookup(id))
		} else {
			out.Participants = append(out.Participants, UserRef{ID: id})
		}
	}

	for _, m := range c.Messages {
		sender := UserRef{ID: m.Sender}
		if spec.MessageSenders {
			sender = r.Lookup(m.Sender)
		}
		out.Messages = append(out.Messages, ResolvedMessage{
			Sender:    sender,
			Content:   m.Content,
			Timestamp: m.Timestamp.Format(TimeLayout),
		})
	}

	return out
}

// ResolveConversations resolves a batch, preserving order.
func (r *Resolver) ResolveConversations(convs []*Conversation, spec ResolveSpec) []ResolvedConversation {
	out := make([]ResolvedConversation, 0, len(convs))
	for _, c := range convs {
		out = append(out, r.ResolveConversation(c, spec))
	}
	return out
}
