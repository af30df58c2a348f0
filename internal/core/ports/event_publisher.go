package ports

import (
	"context"
	"time"

	"connectfood/internal/core/domain/model/donation"
)

// EventPublisher hands committed lifecycle events to the notification channel.
// Publish must not block on slow consumers. A returned error is logged by the
// caller and never undoes the committed change.
type EventPublisher interface {
	Publish(ctx context.Context, event donation.LifecycleEvent) error
}

// Clock supplies the current time to the lifecycle rules.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
