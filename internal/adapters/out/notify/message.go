// Package notify delivers lifecycle events to interested parties without
// blocking the operation that committed them.
//
// The Dispatcher implements ports.EventPublisher. Publish only enqueues; a
// single worker started with Run hands each event to every Sink in order.
// When the queue is full the event is dropped and Publish reports
// ErrQueueFull, which the caller logs.
package notify

import (
	"time"

	"connectfood/internal/core/domain/model/donation"
)

// Message is the JSON form of a lifecycle event sent to WebSocket subscribers.
// System events such as an expiry carry no actor.
type Message struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	DonationID string    `json:"donationId"`
	Event      string    `json:"event,omitempty"`
	FromStatus string    `json:"fromStatus,omitempty"`
	ToStatus   string    `json:"toStatus"`
	ActorID    string    `json:"actorId,omitempty"`
	ActorRole  string    `json:"actorRole,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewMessage(e donation.LifecycleEvent) Message {
	m := Message{
		ID:         e.ID,
		Kind:       string(e.Kind),
		DonationID: e.DonationID.String(),
		ToStatus:   e.To.String(),
		Reason:     e.Reason,
		OccurredAt: e.OccurredAt,
	}
	if !e.ActorID.IsZero() {
		m.ActorID = e.ActorID.String()
		m.ActorRole = e.ActorRole.String()
	}
	if e.Event != donation.UnknownEvent {
		m.Event = e.Event.String()
	}
	if e.From != donation.Unknown {
		m.FromStatus = e.From.String()
	}
	return m
}
