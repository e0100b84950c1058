// Package notify delivers order notifications to clients.
//
// A Sender pushes one Event to a channel (Redis pub/sub, the log). Async adapts a Sender
// to ports.Notifier: each notification runs on its own goroutine with a detached context,
// the number of goroutines is bounded, and a saturated notifier drops and logs instead of
// blocking the request that triggered it.
package notify

import (
	"context"
	"time"
)

// Event types.
const (
	EventStageChanged   = "order.stage_changed"
	EventDriverAssigned = "order.driver_assigned"
)

// Event is the payload published for one notification.
type Event struct {
	Type    string    `json:"type"`
	UserID  string    `json:"userId"`
	OrderID string    `json:"orderId"`
	Stage   string    `json:"stage,omitempty"`
	At      time.Time `json:"at"`
}

// Sender delivers a single event. Implementations may block until ctx is done.
type Sender interface {
	Send(ctx context.Context, event Event) error
}
