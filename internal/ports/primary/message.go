package primary

import (
	"context"

	"github.com/example/techmarket/internal/core/principal"
)

// MessageService defines the primary port for mission thread messaging.
// Messaging unlocks only once the parent mission has been accepted.
type MessageService interface {
	// Post appends a message to a mission's thread.
	Post(ctx context.Context, req PostMessageRequest) (*Message, error)

	// Thread retrieves a mission's messages ordered by creation time
	// ascending. Scoped to the mission's parties.
	Thread(ctx context.Context, caller principal.Principal, missionID string) ([]*Message, error)

	// MarkThreadRead stamps read_at on all messages in the thread not
	// sent by the caller. Idempotent.
	MarkThreadRead(ctx context.Context, caller principal.Principal, missionID string) error

	// UnreadCount returns the number of unread messages addressed to
	// the caller in the thread.
	UnreadCount(ctx context.Context, caller principal.Principal, missionID string) (int, error)
}

// PostMessageRequest contains parameters for posting a message.
type PostMessageRequest struct {
	Caller    principal.Principal
	MissionID string
	Body      string
}

// Message represents a message entity at the port boundary.
type Message struct {
	ID        string
	MissionID string
	SenderRef string
	Body      string
	CreatedAt string
	ReadAt    string
}
