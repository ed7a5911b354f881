package notify

import (
	"context"

	"github.com/google/uuid"
)

// Notification is a single push alert for a reminder. The ID is the
// reminder's identifier; the receiving gateway collapses redundant
// notifications with the same ID, the sender does not.
type Notification struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
}

// Notifier delivers a single alert to the user's device.
type Notifier interface {
	Notify(ctx context.Context, note Notification) error
}
