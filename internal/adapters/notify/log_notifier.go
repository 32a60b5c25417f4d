// Package notify implements the notifier port. Deliveries are recorded to
// the process log; a real deployment would swap in an email or push
// adapter behind the same port.
package notify

import (
	"context"
	"log"

	"github.com/example/techmarket/internal/ports/secondary"
)

// LogNotifier writes notifications to the standard logger.
type LogNotifier struct {
	logger *log.Logger
}

// NewLogNotifier creates a LogNotifier. A nil logger uses the default
// standard logger.
func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify records the notification. Fire-and-forget: there is no error to
// surface to the operation that triggered the event.
func (n *LogNotifier) Notify(ctx context.Context, notification secondary.Notification) {
	n.logger.Printf("notify %s: mission=%s recipient=%s %s",
		notification.Event, notification.MissionID, notification.RecipientRef, notification.Detail)
}

// Ensure LogNotifier implements the port.
var _ secondary.Notifier = (*LogNotifier)(nil)
