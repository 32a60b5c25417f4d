package secondary

import "context"

// Event names a notification event dispatched by the lifecycle engine.
type Event string

const (
	EventMissionSubmitted Event = "mission_submitted"
	EventMissionAccepted  Event = "mission_accepted"
	EventMissionDeclined  Event = "mission_declined"
	EventMissionCompleted Event = "mission_completed"
	EventMessagePosted    Event = "message_posted"
)

// Notification describes a single fire-and-forget delivery to a principal.
type Notification struct {
	Event        Event
	MissionID    string
	RecipientRef string // profile ID or guest token of the recipient
	Detail       string // short human-readable summary
}

// Notifier defines the secondary port for notification delivery. Dispatch
// is fire-and-forget: implementations log failures and never surface them
// to the lifecycle operation that triggered the event.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
