// Package position models the push-based position feed: fixes arrive from an
// external collaborator and are delivered to the tracker over a channel.
package position

import (
	"context"

	"github.com/nearby-labs/waypost/internal/models"
)

// Source is a feed of position fixes. Start is called once, the first time a
// reminder is armed for monitoring; the feed is never stopped after that.
type Source interface {
	Start(ctx context.Context) (<-chan models.Position, error)
}

// Channel is an in-process Source fed by the ingest API. Fixes published
// while nothing consumes the feed, or faster than the tracker drains them,
// are dropped: every fix is superseded by the next one anyway.
type Channel struct {
	fixes chan models.Position
}

// NewChannel creates a channel-backed source with the given buffer size.
func NewChannel(buffer int) *Channel {
	return &Channel{fixes: make(chan models.Position, buffer)}
}

// Start returns the fix channel. The channel exists from construction, so
// starting the feed more than once is harmless.
func (c *Channel) Start(_ context.Context) (<-chan models.Position, error) {
	return c.fixes, nil
}

// Publish offers a fix to the feed without blocking. It reports whether the
// fix was accepted.
func (c *Channel) Publish(pos models.Position) bool {
	select {
	case c.fixes <- pos:
		return true
	default:
		return false
	}
}
